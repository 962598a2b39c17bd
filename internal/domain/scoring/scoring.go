package scoring

import (
	"fmt"

	"doralyzer/internal/domain/model"
)

// CategoryScore is the aggregated result for one category: the arithmetic
// mean of the answer values of its questions, in [0,100] for a well-formed
// catalog.
type CategoryScore struct {
	Category model.Category
	Score    float64
}

// Aggregate converts a submission's raw answers into per-category
// percentage scores. For every category it averages the answer values of
// the category's questions, treating a missing answer as 0. The result
// preserves the order of the category list.
//
// A category without questions would divide by zero; that is reported as
// an error instead of propagating NaN. Catalog validation rejects such
// configurations at startup, so hitting this at call time means the
// inputs bypassed the catalog.
//
// Pure function of its inputs, no side effects.
func Aggregate(sub model.Submission, questions []model.Question, categories []model.Category) ([]CategoryScore, error) {
	scores := make([]CategoryScore, 0, len(categories))
	for _, cat := range categories {
		sum, count := 0, 0
		for _, q := range questions {
			if q.CategoryID != cat.ID {
				continue
			}
			sum += sub.Answers[q.ID]
			count++
		}
		if count == 0 {
			return nil, fmt.Errorf("category %d has no questions, score undefined", cat.ID)
		}
		scores = append(scores, CategoryScore{
			Category: cat,
			Score:    float64(sum) / float64(count),
		})
	}
	return scores, nil
}

// Overall returns the mean of the category scores. Zero when empty.
func Overall(scores []CategoryScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, cs := range scores {
		sum += cs.Score
	}
	return sum / float64(len(scores))
}
