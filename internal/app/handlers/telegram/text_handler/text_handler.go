package text_handler

import (
	"fmt"
	"strings"

	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/handlers/telegram/flow"
	"doralyzer/internal/app/state"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// TextHandler routes free-text messages by the draft's stage: the
// provider prompt, the entity prompt, or an observation attached to the
// last answered question.
type TextHandler struct {
	submissionService *service.SubmissionService
	chats             *state.Chats
}

// NewTextHandler returns the handler structure.
func NewTextHandler(submissionService *service.SubmissionService, chats *state.Chats) *TextHandler {
	return &TextHandler{submissionService: submissionService, chats: chats}
}

func (h *TextHandler) Handle(c telebot.Context) error {
	chatID := c.Chat().ID
	loc := h.chats.Locale(chatID)
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	draftKey, ok := h.chats.Draft(chatID)
	if !ok {
		return c.Send(i18n.T(i18n.MsgNotInAssessment, loc))
	}
	store := h.submissionService.Store()
	draft, found, err := store.GetDraft(draftKey)
	if err != nil {
		return fmt.Errorf("failed to get draft: %w", err)
	}
	if !found {
		h.chats.ClearDraft(chatID)
		return c.Send(i18n.T(i18n.MsgNotInAssessment, loc))
	}

	switch draft.Stage {
	case model.StageProvider:
		draft.Provider = text
		draft.Stage = model.StageEntity
		if _, err := store.UpdateDraft(draft); err != nil {
			return fmt.Errorf("failed to update draft: %w", err)
		}
		return c.Send(i18n.T(i18n.MsgAskEntity, loc))

	case model.StageEntity:
		draft.FinancialEntity = text
		draft.Stage = model.StageAnswering
		draft.CurrentQuestion = 0
		if _, err := store.UpdateDraft(draft); err != nil {
			return fmt.Errorf("failed to update draft: %w", err)
		}
		return flow.SendQuestion(c, h.submissionService.Catalog(), draft, loc)

	default:
		// While answering or reviewing, free text is an observation for
		// the question answered last.
		questionID, answered := h.chats.LastAnswered(chatID)
		if !answered {
			return c.Send(i18n.T(i18n.MsgNotInAssessment, loc))
		}
		draft.Observations[questionID] = text
		if _, err := store.UpdateDraft(draft); err != nil {
			return fmt.Errorf("failed to update draft: %w", err)
		}
		return c.Send(i18n.T(i18n.MsgObservationSaved, loc))
	}
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *TextHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
