package models

import "time"

// Analysis is one stored analysis run: the metrics snapshot plus the
// reference date it was computed against. Collaborators re-read the
// snapshot; they never recompute it from the raw report.
type Analysis struct {
	ID            string         `json:"id"`
	UserID        int64          `json:"user_id"`
	PersonName    string         `json:"person_name"`
	Score         string         `json:"score"`
	ReferenceDate time.Time      `json:"reference_date"`
	Metrics       *MetricsResult `json:"metrics,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
