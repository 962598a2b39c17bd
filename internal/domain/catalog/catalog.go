package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"doralyzer/internal/domain/model"
	"doralyzer/internal/i18n"
)

// Placeholder tokens allowed in question prompts.
const (
	PlaceholderProvider = "{providerName}"
	PlaceholderEntity   = "{financialEntityName}"
)

// Catalog is the static question/category configuration consumed by the
// rest of the application. It is immutable after Load.
type Catalog struct {
	categories []model.Category
	questions  []model.Question

	byCategory   map[int][]model.Question
	questionByID map[int]model.Question
}

type catalogFile struct {
	Categories []model.Category `json:"categories"`
	Questions  []model.Question `json:"questions"`
}

// Load reads the catalog from a JSON file and validates it. Validation
// happens here, at startup, so the aggregator and the report renderer can
// assume a well-formed catalog at call time.
func Load(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var cf catalogFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}
	return New(cf.Categories, cf.Questions)
}

// New builds a validated catalog from in-memory configuration.
func New(categories []model.Category, questions []model.Question) (*Catalog, error) {
	if err := validate(categories, questions); err != nil {
		return nil, err
	}
	c := &Catalog{
		categories:   categories,
		questions:    questions,
		byCategory:   make(map[int][]model.Question, len(categories)),
		questionByID: make(map[int]model.Question, len(questions)),
	}
	for _, q := range questions {
		c.byCategory[q.CategoryID] = append(c.byCategory[q.CategoryID], q)
		c.questionByID[q.ID] = q
	}
	return c, nil
}

func validate(categories []model.Category, questions []model.Question) error {
	if len(categories) == 0 {
		return fmt.Errorf("catalog has no categories")
	}
	catIDs := make(map[int]bool, len(categories))
	for _, cat := range categories {
		if catIDs[cat.ID] {
			return fmt.Errorf("duplicate category id %d", cat.ID)
		}
		catIDs[cat.ID] = true
	}
	questionIDs := make(map[int]bool, len(questions))
	perCategory := make(map[int]int, len(categories))
	for _, q := range questions {
		if questionIDs[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		questionIDs[q.ID] = true
		if !catIDs[q.CategoryID] {
			return fmt.Errorf("question %d references unknown category %d", q.ID, q.CategoryID)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %d has no answer options", q.ID)
		}
		for _, opt := range q.Options {
			if opt.Value < 0 || opt.Value > 100 {
				return fmt.Errorf("question %d has option value %d outside [0,100]", q.ID, opt.Value)
			}
		}
		perCategory[q.CategoryID]++
	}
	// A category with zero questions would make its mean score undefined.
	for _, cat := range categories {
		if perCategory[cat.ID] == 0 {
			return fmt.Errorf("category %d (%s) has no questions", cat.ID, cat.Name.EN)
		}
	}
	return nil
}

// Categories returns the ordered category list.
func (c *Catalog) Categories() []model.Category { return c.categories }

// Questions returns the ordered question list.
func (c *Catalog) Questions() []model.Question { return c.questions }

// QuestionsForCategory returns the questions belonging to one category,
// in catalog order.
func (c *Catalog) QuestionsForCategory(categoryID int) []model.Question {
	return c.byCategory[categoryID]
}

// Question looks up a question by id.
func (c *Catalog) Question(id int) (model.Question, bool) {
	q, ok := c.questionByID[id]
	return q, ok
}

// QuestionAt returns the question at the given catalog position.
func (c *Catalog) QuestionAt(index int) (model.Question, bool) {
	if index < 0 || index >= len(c.questions) {
		return model.Question{}, false
	}
	return c.questions[index], true
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int { return len(c.questions) }

// ResolvePrompt renders a question prompt in the given locale with the
// placeholder tokens substituted by the submission's own field values.
func ResolvePrompt(q model.Question, loc i18n.Locale, provider, financialEntity string) string {
	r := strings.NewReplacer(
		PlaceholderProvider, provider,
		PlaceholderEntity, financialEntity,
	)
	return r.Replace(q.Prompt.In(loc))
}
