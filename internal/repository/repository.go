package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/creditpulse/cibil-service/internal/models"
)

// ErrAnalysisNotFound is returned when no stored analysis matches the id.
var ErrAnalysisNotFound = fmt.Errorf("analysis not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO bureau.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM bureau.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveAnalysis stores one analysis run with its metrics snapshot
func (r *Repository) SaveAnalysis(a *models.Analysis) error {
	metrics, err := json.Marshal(a.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	query := `
		INSERT INTO bureau.analyses (id, user_id, person_name, score, reference_date, metrics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err = r.db.QueryRow(query, a.ID, a.UserID, a.PersonName, a.Score, a.ReferenceDate, metrics).
		Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// FindAnalysisByID retrieves one stored analysis including its metrics
func (r *Repository) FindAnalysisByID(id string, userID int64) (*models.Analysis, error) {
	a := &models.Analysis{}
	var metrics []byte
	query := `
		SELECT id, user_id, person_name, score, reference_date, metrics, created_at
		FROM bureau.analyses
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&a.ID, &a.UserID, &a.PersonName, &a.Score, &a.ReferenceDate, &metrics, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	if err := json.Unmarshal(metrics, &a.Metrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}
	return a, nil
}

// ListAnalysesByUser lists the user's stored analyses, newest first,
// without the metrics snapshots
func (r *Repository) ListAnalysesByUser(userID int64) ([]models.Analysis, error) {
	query := `
		SELECT id, user_id, person_name, score, reference_date, created_at
		FROM bureau.analyses
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		var a models.Analysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.PersonName, &a.Score, &a.ReferenceDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysesBefore removes stored analyses created before the cutoff
func (r *Repository) DeleteAnalysesBefore(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM bureau.analyses WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete analyses: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted analyses: %w", err)
	}
	return deleted, nil
}
