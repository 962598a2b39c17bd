package submit_handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/state"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// SubmitHandler finalizes the chat's draft: promote it to a submission,
// store it, and deliver the report. A store failure and a post-store
// delivery failure get different notices, since only in the second case
// the submission is kept and resendable.
type SubmitHandler struct {
	submissionService *service.SubmissionService
	chats             *state.Chats
	logger            *zap.Logger
}

// NewSubmitHandler returns the handler structure.
func NewSubmitHandler(submissionService *service.SubmissionService, chats *state.Chats, logger *zap.Logger) *SubmitHandler {
	return &SubmitHandler{
		submissionService: submissionService,
		chats:             chats,
		logger:            logger,
	}
}

func (h *SubmitHandler) Handle(c telebot.Context) error {
	chatID := c.Chat().ID
	loc := h.chats.Locale(chatID)

	draftKey, ok := h.chats.Draft(chatID)
	if !ok {
		return c.Send(i18n.T(i18n.MsgNotInAssessment, loc))
	}
	sub, err := h.submissionService.PromoteDraft(draftKey)
	if err != nil {
		h.logger.Error("failed to promote draft", zap.Int64("key", draftKey), zap.Error(err))
		h.chats.ClearDraft(chatID)
		return c.Send(i18n.T(i18n.MsgNotInAssessment, loc))
	}
	h.chats.ClearDraft(chatID)

	if err := h.submissionService.Finalize(context.Background(), sub, loc); err != nil {
		var deliveryErr *service.DeliveryError
		if errors.As(err, &deliveryErr) {
			// Stored but not pushed out; the user can resend later.
			h.logger.Error("report delivery failed",
				zap.Int64("key", sub.Key()), zap.Error(err))
			return c.Send(i18n.T(i18n.MsgDeliveryFailed, loc))
		}
		h.logger.Error("failed to store submission",
			zap.Int64("key", sub.Key()), zap.Error(err))
		return c.Send(i18n.T(i18n.MsgSubmitFailed, loc))
	}
	return c.Send(i18n.T(i18n.MsgSubmittedOK, loc))
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *SubmitHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
