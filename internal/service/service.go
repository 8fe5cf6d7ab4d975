package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/creditpulse/cibil-service/internal/analyzer"
	"github.com/creditpulse/cibil-service/internal/config"
	"github.com/creditpulse/cibil-service/internal/ingest"
	"github.com/creditpulse/cibil-service/internal/models"
	"github.com/creditpulse/cibil-service/internal/repository"
	"github.com/creditpulse/cibil-service/internal/utils/email"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	mailer *email.Sender
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, mailer *email.Sender) *Service {
	return &Service{repo: repo, log: log, config: cfg, mailer: mailer}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// AnalyzeReport ingests one report payload, derives the metrics as of the
// reference date and stores the snapshot for the authenticated user.
func (s *Service) AnalyzeReport(ctx context.Context, payload []byte, contentType string, referenceDate time.Time) (*models.Analysis, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := ingest.Decode(payload, contentType)
	if err != nil {
		return nil, err
	}

	report, err := analyzer.BuildReport(raw)
	if err != nil {
		return nil, err
	}

	metrics := analyzer.Analyze(report, referenceDate)

	analysis := &models.Analysis{
		ID:            uuid.NewString(),
		UserID:        userID,
		PersonName:    metrics.Name,
		Score:         metrics.Score,
		ReferenceDate: referenceDate,
		Metrics:       metrics,
	}
	if err := s.repo.SaveAnalysis(analysis); err != nil {
		return nil, err
	}

	s.log.Infof("Analysis %s stored for user %d: %d accounts, %d enquiries",
		analysis.ID, userID, len(report.Accounts), len(report.Enquiries))

	if s.mailer != nil && (metrics.WriteOffCount > 0 || metrics.DPD30In6M > 0) {
		// alert failures must not fail the analysis request
		if err := s.mailer.SendRiskAlert(analysis); err != nil {
			s.log.Warnf("Risk alert for analysis %s not delivered: %v", analysis.ID, err)
		}
	}

	return analysis, nil
}

// GetAnalysis retrieves one stored analysis with its metrics snapshot
func (s *Service) GetAnalysis(ctx context.Context, id string) (*models.Analysis, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindAnalysisByID(id, userID)
}

// ListAnalyses lists the user's stored analyses without metrics
func (s *Service) ListAnalyses(ctx context.Context) ([]models.Analysis, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAnalysesByUser(userID)
}

// PurgeExpiredAnalyses removes analyses older than the retention window
func (s *Service) PurgeExpiredAnalyses() {
	cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays)
	deleted, err := s.repo.DeleteAnalysesBefore(cutoff)
	if err != nil {
		s.log.Errorf("Retention purge failed: %v", err)
		return
	}
	s.log.Infof("Retention purge removed %d analyses older than %s", deleted, cutoff.Format("2006-01-02"))
}

func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
