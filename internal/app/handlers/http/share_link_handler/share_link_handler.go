package share_link_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"doralyzer/internal/domain/invites"
	httpError "doralyzer/pkg/http"
)

// ShareLinkRequest is the request body: an optional label recorded in the
// QR file name, e.g. the provider the assessment is meant for.
type ShareLinkRequest struct {
	Label string `json:"label"`
}

// ShareLinkResponse carries the bot deep link and the generated QR image
// URL.
type ShareLinkResponse struct {
	Link      string `json:"link"`
	QRCodeURL string `json:"qr_code_url"`
}

// ShareLinkHandler generates a deep link for opening the assessment bot,
// together with a QR code image for embedding in invitations. The token
// is registered so the bot's /start handler can claim it and pre-fill the
// provider from the label.
type ShareLinkHandler struct {
	botUsername string
	baseURL     string
	qrDir       string
	invites     *invites.Registry
	logger      *zap.Logger
}

// NewShareLinkHandler creates a new handler instance.
func NewShareLinkHandler(botUsername, baseURL, qrDir string, inviteRegistry *invites.Registry, logger *zap.Logger) *ShareLinkHandler {
	return &ShareLinkHandler{
		botUsername: botUsername,
		baseURL:     baseURL,
		qrDir:       qrDir,
		invites:     inviteRegistry,
		logger:      logger,
	}
}

func (h *ShareLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req ShareLinkRequest
	if r.Body != nil {
		// The body is optional; a decode failure only loses the label.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	token := uuid.New().String()
	h.invites.Add(token, req.Label)
	link := fmt.Sprintf("https://t.me/%s?start=assess_%s", h.botUsername, token)

	qrFilename := fmt.Sprintf("assess_%s.png", token)
	qrPath := filepath.Join(h.qrDir, qrFilename)
	if err := qrcode.WriteFile(link, qrcode.Medium, 256, qrPath); err != nil {
		h.logger.Error("failed to generate QR code", zap.String("path", qrPath), zap.Error(err))
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate QR code: %v", err))
		return
	}

	response := ShareLinkResponse{
		Link:      link,
		QRCodeURL: fmt.Sprintf("%s/qr/%s", h.baseURL, qrFilename),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
}
