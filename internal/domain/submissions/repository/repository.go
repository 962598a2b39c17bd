package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/scoring"
)

// ArchiveRepository persists finalized submissions to PostgreSQL. The
// session store stays the source of truth for the bot; the archive is an
// append-only record for later review.
type ArchiveRepository struct {
	db *pgxpool.Pool
}

// NewArchiveRepository creates a new ArchiveRepository.
func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// SaveSubmission inserts a finalized submission with its aggregated
// scores and returns the row id.
func (r *ArchiveRepository) SaveSubmission(ctx context.Context, s model.Submission, scores []scoring.CategoryScore) (int, error) {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal answers: %w", err)
	}
	observations, err := json.Marshal(s.Observations)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal observations: %w", err)
	}
	categoryScores := make(map[int]float64, len(scores))
	for _, cs := range scores {
		categoryScores[cs.Category.ID] = cs.Score
	}
	scoresJSON, err := json.Marshal(categoryScores)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal scores: %w", err)
	}

	var id int
	err = r.db.QueryRow(ctx, `
                INSERT INTO submissions (provider, financial_entity, user_name, created_at, answers, observations, category_scores, overall_score)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                RETURNING id
        `, s.Provider, s.FinancialEntity, s.UserName, s.CreatedAt, answers, observations, scoresJSON, scoring.Overall(scores)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to archive submission: %w", err)
	}
	return id, nil
}

// GetSubmissionsByProvider returns the archived submissions for one
// provider, oldest first.
func (r *ArchiveRepository) GetSubmissionsByProvider(ctx context.Context, provider string) ([]model.Submission, error) {
	rows, err := r.db.Query(ctx, `
                SELECT provider, financial_entity, user_name, created_at, answers, observations
                FROM submissions
                WHERE provider = $1
                ORDER BY created_at
        `, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var (
			s            model.Submission
			answers      []byte
			observations []byte
		)
		if err := rows.Scan(&s.Provider, &s.FinancialEntity, &s.UserName, &s.CreatedAt, &answers, &observations); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if err := json.Unmarshal(answers, &s.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
		if err := json.Unmarshal(observations, &s.Observations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal observations: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return subs, nil
}

// DeleteSubmission removes an archived submission by its identity key.
// Returns whether a row was deleted.
func (r *ArchiveRepository) DeleteSubmission(ctx context.Context, createdAt int64) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM submissions WHERE created_at = $1", createdAt)
	if err != nil {
		return false, fmt.Errorf("failed to delete submission: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
