package model

import "doralyzer/internal/i18n"

// AnswerOption is one selectable answer: an integer compliance value in
// [0,100] and its localized label.
type AnswerOption struct {
	Value int       `json:"value"`
	Label i18n.Text `json:"label"`
}

// Question represents one catalog question. The prompt may contain the
// placeholders {providerName} and {financialEntityName}, substituted at
// render time with the submission's own fields.
type Question struct {
	ID         int            `json:"id"`
	CategoryID int            `json:"category_id"`
	Prompt     i18n.Text      `json:"prompt"`
	Options    []AnswerOption `json:"options"`
}

// OptionLabel returns the label of the option carrying the given value.
func (q Question) OptionLabel(value int, loc i18n.Locale) (string, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Label.In(loc), true
		}
	}
	return "", false
}
