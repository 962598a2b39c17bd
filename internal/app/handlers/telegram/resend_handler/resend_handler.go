package resend_handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/state"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// ResendHandler regenerates and redelivers the report of a stored
// submission picked from the submissions list.
type ResendHandler struct {
	submissionService *service.SubmissionService
	chats             *state.Chats
	logger            *zap.Logger
}

// NewResendHandler returns the handler structure.
func NewResendHandler(submissionService *service.SubmissionService, chats *state.Chats, logger *zap.Logger) *ResendHandler {
	return &ResendHandler{
		submissionService: submissionService,
		chats:             chats,
		logger:            logger,
	}
}

func (h *ResendHandler) Handle(c telebot.Context) error {
	loc := h.chats.Locale(c.Chat().ID)

	key, err := parseResendData(c.Callback().Data)
	if err != nil {
		return err
	}
	if err := h.submissionService.ResendReport(context.Background(), key, loc); err != nil {
		h.logger.Error("report resend failed", zap.Int64("key", key), zap.Error(err))
		return c.Send(i18n.T(i18n.MsgDeliveryFailed, loc))
	}
	return c.Send(i18n.T(i18n.MsgResendOK, loc))
}

// parseResendData splits the callback payload "resend_<key>".
func parseResendData(data string) (int64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(data, "\f", ""))
	parts := strings.Split(cleaned, "_")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed resend callback %q", data)
	}
	key, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed submission key in callback %q", data)
	}
	return key, nil
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *ResendHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
