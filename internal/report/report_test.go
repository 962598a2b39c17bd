package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doralyzer/internal/domain/catalog"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/scoring"
	"doralyzer/internal/i18n"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	options := []model.AnswerOption{
		{Value: 0, Label: i18n.Text{EN: "No", ES: "No"}},
		{Value: 50, Label: i18n.Text{EN: "Partially", ES: "Parcialmente"}},
		{Value: 100, Label: i18n.Text{EN: "Yes", ES: "Sí"}},
	}
	cat, err := catalog.New(
		[]model.Category{
			{ID: 1, Name: i18n.Text{EN: "Risk Management", ES: "Gestión de riesgos"}},
			{ID: 2, Name: i18n.Text{EN: "Incident Reporting", ES: "Notificación de incidentes"}},
		},
		[]model.Question{
			{ID: 1, CategoryID: 1, Prompt: i18n.Text{EN: "Does {providerName} manage risk for {financialEntityName}?", ES: "¿Gestiona {providerName} el riesgo para {financialEntityName}?"}, Options: options},
			{ID: 2, CategoryID: 2, Prompt: i18n.Text{EN: "Are incidents reported?", ES: "¿Se notifican los incidentes?"}, Options: options},
		},
	)
	require.NoError(t, err)
	return cat
}

func testSubmission() model.Submission {
	return model.Submission{
		Provider:        "CloudCo",
		FinancialEntity: "BancoSur",
		UserName:        "auditor",
		CreatedAt:       1700000000000,
		Answers:         model.AnswerSet{1: 50, 2: 100},
		Observations:    model.ObservationSet{1: "policy reviewed in audit, evidence archived"},
	}
}

func testScores(t *testing.T, sub model.Submission, cat *catalog.Catalog) []scoring.CategoryScore {
	t.Helper()
	scores, err := scoring.Aggregate(sub, cat.Questions(), cat.Categories())
	require.NoError(t, err)
	return scores
}

func TestRenderChartProducesPNG(t *testing.T) {
	cat := testCatalog(t)
	sub := testSubmission()

	png, err := RenderChart(testScores(t, sub, cat), i18n.EN)
	require.NoError(t, err)
	require.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRenderChartEmptyScores(t *testing.T) {
	_, err := RenderChart(nil, i18n.EN)
	require.Error(t, err)
}

func TestRenderProducesPDF(t *testing.T) {
	cat := testCatalog(t)
	sub := testSubmission()
	renderer := NewPDFRenderer(cat)

	document, filename, err := renderer.Render(sub, testScores(t, sub, cat), i18n.EN)
	require.NoError(t, err)
	require.True(t, len(document) > 4)
	assert.Equal(t, "%PDF", string(document[:4]))
	assert.Contains(t, filename, "cloudco")
	assert.Contains(t, filename, ".pdf")
}

func TestRenderSpanishLocale(t *testing.T) {
	cat := testCatalog(t)
	sub := testSubmission()
	renderer := NewPDFRenderer(cat)

	document, _, err := renderer.Render(sub, testScores(t, sub, cat), i18n.ES)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(document[:4]))
}

func TestRenderManyQuestionsPaginates(t *testing.T) {
	options := []model.AnswerOption{
		{Value: 0, Label: i18n.Text{EN: "No"}},
		{Value: 100, Label: i18n.Text{EN: "Yes"}},
	}
	questions := make([]model.Question, 0, 40)
	answers := make(model.AnswerSet, 40)
	for i := 1; i <= 40; i++ {
		questions = append(questions, model.Question{
			ID:         i,
			CategoryID: 1,
			Prompt:     i18n.Text{EN: "A reasonably long prompt that wraps over several lines when laid out in the narrow prompt column of the answers table, forcing page breaks"},
			Options:    options,
		})
		answers[i] = 100
	}
	cat, err := catalog.New([]model.Category{{ID: 1, Name: i18n.Text{EN: "Risk"}}}, questions)
	require.NoError(t, err)

	sub := testSubmission()
	sub.Answers = answers
	renderer := NewPDFRenderer(cat)

	document, _, err := renderer.Render(sub, testScores(t, sub, cat), i18n.EN)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(document[:4]))
}
