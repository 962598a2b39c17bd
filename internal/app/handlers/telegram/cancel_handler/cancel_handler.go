package cancel_handler

import (
	"fmt"

	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/state"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// CancelHandler discards the chat's active draft.
type CancelHandler struct {
	submissionService *service.SubmissionService
	chats             *state.Chats
}

// NewCancelHandler returns the handler structure.
func NewCancelHandler(submissionService *service.SubmissionService, chats *state.Chats) *CancelHandler {
	return &CancelHandler{submissionService: submissionService, chats: chats}
}

func (h *CancelHandler) Handle(c telebot.Context) error {
	chatID := c.Chat().ID
	loc := h.chats.Locale(chatID)

	if draftKey, ok := h.chats.Draft(chatID); ok {
		if _, err := h.submissionService.Store().DeleteDraft(draftKey); err != nil {
			return fmt.Errorf("failed to delete draft: %w", err)
		}
		h.chats.ClearDraft(chatID)
	}
	return c.Send(i18n.T(i18n.MsgDraftCancelled, loc))
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *CancelHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
