package model

import "time"

// AnswerSet maps a question id to the selected option value.
// Keys need not cover the whole catalog; a missing key scores as 0.
type AnswerSet map[int]int

// ObservationSet maps a question id to an optional free-text note.
type ObservationSet map[int]string

// Submission is a completed questionnaire instance. It is immutable once
// created except through an explicit update that replaces the answer and
// observation sets wholesale. The creation timestamp (Unix milliseconds)
// is the identity key and is assumed unique.
type Submission struct {
	Provider        string         `json:"provider"`
	FinancialEntity string         `json:"financial_entity"`
	UserName        string         `json:"user_name"`
	CreatedAt       int64          `json:"created_at"`
	Answers         AnswerSet      `json:"answers"`
	Observations    ObservationSet `json:"observations"`
}

// Key returns the identity key of the submission.
func (s Submission) Key() int64 { return s.CreatedAt }

// CreatedTime returns the creation timestamp as time.Time.
func (s Submission) CreatedTime() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

// Draft flow stages.
const (
	StageProvider  = "provider"
	StageEntity    = "entity"
	StageAnswering = "answering"
	StageReview    = "review"
)

// Draft is a submission in progress. It shares the submission shape and
// identity key, plus the conversational position of the form-entry flow.
type Draft struct {
	Provider        string         `json:"provider"`
	FinancialEntity string         `json:"financial_entity"`
	UserName        string         `json:"user_name"`
	CreatedAt       int64          `json:"created_at"`
	Answers         AnswerSet      `json:"answers"`
	Observations    ObservationSet `json:"observations"`

	Stage           string `json:"stage"`
	CurrentQuestion int    `json:"current_question"`
}

// Key returns the identity key of the draft.
func (d Draft) Key() int64 { return d.CreatedAt }

// NewDraft creates an empty draft keyed by the given creation time.
func NewDraft(createdAt time.Time, userName string) Draft {
	return Draft{
		UserName:     userName,
		CreatedAt:    createdAt.UnixMilli(),
		Answers:      make(AnswerSet),
		Observations: make(ObservationSet),
		Stage:        StageProvider,
	}
}

// Submission converts the draft into a submission with the same identity
// key. Answer and observation sets are copied so later draft edits cannot
// leak into the finalized submission.
func (d Draft) Submission() Submission {
	answers := make(AnswerSet, len(d.Answers))
	for id, v := range d.Answers {
		answers[id] = v
	}
	observations := make(ObservationSet, len(d.Observations))
	for id, note := range d.Observations {
		observations[id] = note
	}
	return Submission{
		Provider:        d.Provider,
		FinancialEntity: d.FinancialEntity,
		UserName:        d.UserName,
		CreatedAt:       d.CreatedAt,
		Answers:         answers,
		Observations:    observations,
	}
}
