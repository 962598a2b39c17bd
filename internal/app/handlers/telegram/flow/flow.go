package flow

import (
	"fmt"

	"gopkg.in/telebot.v4"

	"doralyzer/internal/domain/catalog"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/scoring"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
)

// Inline button uniques. Bound to handler registrations in app; do not
// change one without the other.
const (
	NewAssessmentKey  = "new_assessment"
	MySubmissionsKey  = "my_submissions"
	SwitchLanguageKey = "switch_language"
	AnswerKey         = "answer"
	SubmitKey         = "submit_assessment"
	CancelKey         = "cancel_assessment"
	ResendKey         = "resend"
)

// MainMenu builds the welcome keyboard.
func MainMenu(loc i18n.Locale) *telebot.ReplyMarkup {
	rm := &telebot.ReplyMarkup{}
	rm.InlineKeyboard = [][]telebot.InlineButton{
		{{Text: i18n.T(i18n.BtnNewAssessment, loc), Unique: NewAssessmentKey, Data: "start"}},
		{{Text: i18n.T(i18n.BtnMySubmissions, loc), Unique: MySubmissionsKey, Data: "list"}},
		{{Text: i18n.T(i18n.BtnLanguage, loc), Unique: SwitchLanguageKey, Data: "toggle"}},
	}
	return rm
}

// SendQuestion sends the draft's current question with one inline button
// per answer option.
func SendQuestion(c telebot.Context, cat *catalog.Catalog, d model.Draft, loc i18n.Locale) error {
	q, ok := cat.QuestionAt(d.CurrentQuestion)
	if !ok {
		return fmt.Errorf("question index %d out of range", d.CurrentQuestion)
	}

	header := fmt.Sprintf(i18n.T(i18n.MsgQuestionHeader, loc), d.CurrentQuestion+1, cat.Len())
	prompt := catalog.ResolvePrompt(q, loc, d.Provider, d.FinancialEntity)
	text := fmt.Sprintf("%s\n%s", header, prompt)

	rm := &telebot.ReplyMarkup{}
	rows := make([][]telebot.InlineButton, 0, len(q.Options))
	for _, opt := range q.Options {
		rows = append(rows, []telebot.InlineButton{{
			Text:   opt.Label.In(loc),
			Unique: AnswerKey,
			Data:   fmt.Sprintf("answer_%d_%d", q.ID, opt.Value),
		}})
	}
	rm.InlineKeyboard = rows

	return c.Send(text, rm)
}

// SendReview sends the pre-submit summary with submit/cancel buttons.
func SendReview(c telebot.Context, cat *catalog.Catalog, d model.Draft, loc i18n.Locale) error {
	sub := d.Submission()
	scores, err := scoring.Aggregate(sub, cat.Questions(), cat.Categories())
	if err != nil {
		return fmt.Errorf("failed to aggregate draft scores: %w", err)
	}
	text := i18n.T(i18n.MsgReviewHeader, loc) + "\n\n" + service.BuildSummary(sub, scores, loc)

	rm := &telebot.ReplyMarkup{}
	rm.InlineKeyboard = [][]telebot.InlineButton{{
		{Text: i18n.T(i18n.BtnSubmit, loc), Unique: SubmitKey, Data: "submit"},
		{Text: i18n.T(i18n.BtnCancel, loc), Unique: CancelKey, Data: "cancel"},
	}}
	return c.Send(text, rm)
}
