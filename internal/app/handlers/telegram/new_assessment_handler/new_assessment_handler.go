package new_assessment_handler

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/state"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// NewAssessmentHandler starts a fresh draft for the chat and asks for the
// provider name. An earlier unfinished draft of the same chat is dropped.
type NewAssessmentHandler struct {
	submissionService *service.SubmissionService
	chats             *state.Chats
	logger            *zap.Logger
}

// NewNewAssessmentHandler returns the handler structure.
func NewNewAssessmentHandler(submissionService *service.SubmissionService, chats *state.Chats, logger *zap.Logger) *NewAssessmentHandler {
	return &NewAssessmentHandler{
		submissionService: submissionService,
		chats:             chats,
		logger:            logger,
	}
}

func (h *NewAssessmentHandler) Handle(c telebot.Context) error {
	chatID := c.Chat().ID
	loc := h.chats.Locale(chatID)
	store := h.submissionService.Store()

	if oldKey, ok := h.chats.Draft(chatID); ok {
		if _, err := store.DeleteDraft(oldKey); err != nil {
			h.logger.Warn("failed to drop stale draft", zap.Int64("key", oldKey), zap.Error(err))
		}
		h.chats.ClearDraft(chatID)
	}

	userName := ""
	if sender := c.Sender(); sender != nil {
		userName = sender.FirstName
		if sender.Username != "" {
			userName = sender.Username
		}
	}

	draft := model.NewDraft(time.Now(), userName)
	if err := store.AddDraft(draft); err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	h.chats.SetDraft(chatID, draft.Key())

	return c.Send(i18n.T(i18n.MsgAskProvider, loc))
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *NewAssessmentHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
