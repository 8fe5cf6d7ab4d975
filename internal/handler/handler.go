package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/creditpulse/cibil-service/internal/analyzer"
	"github.com/creditpulse/cibil-service/internal/export"
	"github.com/creditpulse/cibil-service/internal/ingest"
	"github.com/creditpulse/cibil-service/internal/models"
	"github.com/creditpulse/cibil-service/internal/repository"
	"github.com/creditpulse/cibil-service/internal/service"
)

// maxReportBytes caps uploaded report payloads (48-month histories for a
// few hundred tradelines stay well under this).
const maxReportBytes = 8 << 20

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Analyze ingests a report payload and returns the stored analysis with
// its metrics. The reference date defaults to today and may be overridden
// with ?reference_date=YYYY-MM-DD to re-analyze as of a past or future date.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxReportBytes))
	if err != nil || len(payload) == 0 {
		http.Error(w, "Empty or unreadable report payload", http.StatusBadRequest)
		return
	}

	referenceDate := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("reference_date"); raw != "" {
		referenceDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "reference_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	analysis, err := h.svc.AnalyzeReport(r.Context(), payload, r.Header.Get("Content-Type"), referenceDate)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrUnrecognizedReport):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, ingest.ErrUndecodable):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to analyze report", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// ListAnalyses returns the user's stored analyses without metrics
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.svc.ListAnalyses(r.Context())
	if err != nil {
		http.Error(w, "Failed to list analyses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, analyses)
}

// GetAnalysis returns one stored analysis with its metrics snapshot
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.svc.GetAnalysis(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			http.Error(w, "Analysis not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load analysis", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// AccountsCSV streams the all-accounts table of a stored analysis
func (h *Handler) AccountsCSV(w http.ResponseWriter, r *http.Request) {
	h.serveCSV(w, r, "account_history.csv", func(a *models.Analysis) ([]byte, error) {
		return export.AccountsCSV(a.Metrics.AccountRows)
	})
}

// MissedPaymentsCSV streams the missed-payments table of a stored analysis
func (h *Handler) MissedPaymentsCSV(w http.ResponseWriter, r *http.Request) {
	h.serveCSV(w, r, "missed_payments.csv", func(a *models.Analysis) ([]byte, error) {
		return export.MissedPaymentsCSV(a.Metrics.MissedRows)
	})
}

// Legend returns the canonical account-type abbreviation table
func (h *Handler) Legend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analyzer.AbbreviationLegend())
}

func (h *Handler) serveCSV(w http.ResponseWriter, r *http.Request, filename string, render func(*models.Analysis) ([]byte, error)) {
	analysis, err := h.svc.GetAnalysis(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			http.Error(w, "Analysis not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load analysis", http.StatusInternalServerError)
		return
	}

	data, err := render(analysis)
	if err != nil {
		http.Error(w, "Failed to render CSV", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
