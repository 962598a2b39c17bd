package my_submissions_handler

import (
	"fmt"

	"gopkg.in/telebot.v4"

	"doralyzer/internal/app/handlers/telegram/flow"
	"doralyzer/internal/app/state"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// MySubmissionsHandler lists the session's submissions, each with a
// resend-report button.
type MySubmissionsHandler struct {
	submissionService *service.SubmissionService
	chats             *state.Chats
}

// NewMySubmissionsHandler returns the handler structure.
func NewMySubmissionsHandler(submissionService *service.SubmissionService, chats *state.Chats) *MySubmissionsHandler {
	return &MySubmissionsHandler{submissionService: submissionService, chats: chats}
}

func (h *MySubmissionsHandler) Handle(c telebot.Context) error {
	loc := h.chats.Locale(c.Chat().ID)

	subs, err := h.submissionService.Store().ListSubmissions()
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(subs) == 0 {
		return c.Send(i18n.T(i18n.MsgNoSubmissions, loc))
	}

	rm := &telebot.ReplyMarkup{}
	rows := make([][]telebot.InlineButton, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, []telebot.InlineButton{{
			Text:   resendLabel(sub, loc),
			Unique: flow.ResendKey,
			Data:   fmt.Sprintf("resend_%d", sub.Key()),
		}})
	}
	rm.InlineKeyboard = rows
	return c.Send(i18n.T(i18n.MsgSubmissionsHeader, loc), rm)
}

// resendLabel builds the button caption for one stored submission.
func resendLabel(sub model.Submission, loc i18n.Locale) string {
	return fmt.Sprintf("%s: %s — %s",
		i18n.T(i18n.BtnResend, loc), sub.Provider, sub.CreatedTime().Format("2006-01-02 15:04"))
}

// GetHandlerFunc adapts the handler for bot registration.
func (h *MySubmissionsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return h.Handle
}
