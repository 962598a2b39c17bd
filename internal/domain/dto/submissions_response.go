package dto

// SubmissionsResponse is the JSON shape of GET /submissions.
type SubmissionsResponse struct {
	Total       int                 `json:"total"`
	Submissions []SubmissionSummary `json:"submissions"`
}

type SubmissionSummary struct {
	Key             int64               `json:"key"`
	Provider        string              `json:"provider"`
	FinancialEntity string              `json:"financial_entity"`
	UserName        string              `json:"user_name"`
	CreatedAt       string              `json:"created_at"`
	OverallScore    float64             `json:"overall_score"`
	CategoryScores  []CategoryScoreInfo `json:"category_scores"`
}

type CategoryScoreInfo struct {
	CategoryID int     `json:"category_id"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
}
