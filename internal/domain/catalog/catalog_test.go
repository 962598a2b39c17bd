package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doralyzer/internal/domain/model"
	"doralyzer/internal/i18n"
)

func validInputs() ([]model.Category, []model.Question) {
	categories := []model.Category{
		{ID: 1, Name: i18n.Text{EN: "Risk Management", ES: "Gestión de riesgos"}},
		{ID: 2, Name: i18n.Text{EN: "Resilience Testing", ES: "Pruebas de resiliencia"}},
	}
	options := []model.AnswerOption{
		{Value: 0, Label: i18n.Text{EN: "No", ES: "No"}},
		{Value: 100, Label: i18n.Text{EN: "Yes", ES: "Sí"}},
	}
	questions := []model.Question{
		{ID: 1, CategoryID: 1, Prompt: i18n.Text{EN: "Q1", ES: "P1"}, Options: options},
		{ID: 2, CategoryID: 1, Prompt: i18n.Text{EN: "Q2", ES: "P2"}, Options: options},
		{ID: 3, CategoryID: 2, Prompt: i18n.Text{EN: "Q3", ES: "P3"}, Options: options},
	}
	return categories, questions
}

func TestLoad(t *testing.T) {
	data := `{
		"categories": [{"id": 1, "name": {"en": "Risk", "es": "Riesgo"}}],
		"questions": [{
			"id": 1, "category_id": 1,
			"prompt": {"en": "Does {providerName} manage risk?", "es": "¿Gestiona {providerName} el riesgo?"},
			"options": [
				{"value": 0, "label": {"en": "No", "es": "No"}},
				{"value": 100, "label": {"en": "Yes", "es": "Sí"}}
			]
		}]
	}`
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
	assert.Equal(t, "Risk", cat.Categories()[0].Name.In(i18n.EN))

	q, ok := cat.Question(1)
	require.True(t, ok)
	assert.Equal(t, 1, q.CategoryID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestValidation(t *testing.T) {
	categories, questions := validInputs()

	_, err := New(nil, questions)
	assert.Error(t, err, "no categories")

	_, err = New(append(categories, model.Category{ID: 1}), questions)
	assert.Error(t, err, "duplicate category id")

	dupQ := append(questions, questions[0])
	_, err = New(categories, dupQ)
	assert.Error(t, err, "duplicate question id")

	orphan := questions[0]
	orphan.ID = 99
	orphan.CategoryID = 42
	_, err = New(categories, append(questions, orphan))
	assert.Error(t, err, "unknown category reference")

	noOpts := questions[0]
	noOpts.ID = 99
	noOpts.Options = nil
	_, err = New(categories, append(questions, noOpts))
	assert.Error(t, err, "no answer options")

	badOpt := questions[0]
	badOpt.ID = 99
	badOpt.Options = []model.AnswerOption{{Value: 120, Label: i18n.Text{EN: "Too much"}}}
	_, err = New(categories, append(questions, badOpt))
	assert.Error(t, err, "option value outside range")

	empty := append(categories, model.Category{ID: 3, Name: i18n.Text{EN: "Orphan"}})
	_, err = New(empty, questions)
	assert.Error(t, err, "category without questions")
}

func TestAccessors(t *testing.T) {
	categories, questions := validInputs()
	cat, err := New(categories, questions)
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Len())
	assert.Len(t, cat.QuestionsForCategory(1), 2)
	assert.Len(t, cat.QuestionsForCategory(2), 1)
	assert.Empty(t, cat.QuestionsForCategory(99))

	q, ok := cat.QuestionAt(0)
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)

	_, ok = cat.QuestionAt(3)
	assert.False(t, ok)
	_, ok = cat.QuestionAt(-1)
	assert.False(t, ok)
}

func TestResolvePrompt(t *testing.T) {
	q := model.Question{
		Prompt: i18n.Text{
			EN: "Does {providerName} report incidents to {financialEntityName}?",
			ES: "¿Notifica {providerName} los incidentes a {financialEntityName}?",
		},
	}
	got := ResolvePrompt(q, i18n.EN, "CloudCo", "BancoSur")
	assert.Equal(t, "Does CloudCo report incidents to BancoSur?", got)

	got = ResolvePrompt(q, i18n.ES, "CloudCo", "BancoSur")
	assert.Equal(t, "¿Notifica CloudCo los incidentes a BancoSur?", got)
}
