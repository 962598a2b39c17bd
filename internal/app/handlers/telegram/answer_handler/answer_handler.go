package answer_handler

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/handlers/telegram/flow"
	"doralyzer/internal/app/state"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// AnswerHandler processes option-button callbacks: it records the selected
// value in the draft's answer set and sends the next question, or the
// review screen once the catalog is exhausted.
type AnswerHandler struct {
	submissionService *service.SubmissionService
	chats             *state.Chats
}

// NewAnswerHandler returns the handler structure.
func NewAnswerHandler(submissionService *service.SubmissionService, chats *state.Chats) *AnswerHandler {
	return &AnswerHandler{submissionService: submissionService, chats: chats}
}

func (h *AnswerHandler) Handle(c telebot.Context) error {
	chatID := c.Chat().ID
	loc := h.chats.Locale(chatID)

	draftKey, ok := h.chats.Draft(chatID)
	if !ok {
		return c.Send(i18n.T(i18n.MsgNotInAssessment, loc))
	}
	store := h.submissionService.Store()
	draft, found, err := store.GetDraft(draftKey)
	if err != nil {
		return fmt.Errorf("failed to get draft: %w", err)
	}
	if !found || draft.Stage != model.StageAnswering {
		return c.Send(i18n.T(i18n.MsgNotInAssessment, loc))
	}

	questionID, value, err := parseAnswerData(c.Callback().Data)
	if err != nil {
		return err
	}
	cat := h.submissionService.Catalog()
	question, exists := cat.Question(questionID)
	if !exists {
		return fmt.Errorf("answer for unknown question %d", questionID)
	}
	if _, valid := question.OptionLabel(value, loc); !valid {
		return fmt.Errorf("value %d is not an option of question %d", value, questionID)
	}

	draft.Answers[questionID] = value
	draft.CurrentQuestion++
	if draft.CurrentQuestion >= cat.Len() {
		draft.Stage = model.StageReview
	}
	if _, err := store.UpdateDraft(draft); err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	h.chats.SetLastAnswered(chatID, questionID)

	if draft.Stage == model.StageReview {
		return flow.SendReview(c, cat, draft, loc)
	}
	return flow.SendQuestion(c, cat, draft, loc)
}

// parseAnswerData splits the callback payload "answer_<questionID>_<value>".
func parseAnswerData(data string) (int, int, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(data, "\f", ""))
	parts := strings.Split(cleaned, "_")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("malformed answer callback %q", data)
	}
	questionID, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed question id in callback %q", data)
	}
	value, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed option value in callback %q", data)
	}
	return questionID, value, nil
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
