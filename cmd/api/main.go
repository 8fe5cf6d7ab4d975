package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/creditpulse/cibil-service/internal/config"
	"github.com/creditpulse/cibil-service/internal/handler"
	"github.com/creditpulse/cibil-service/internal/middleware"
	"github.com/creditpulse/cibil-service/internal/repository"
	"github.com/creditpulse/cibil-service/internal/service"
	"github.com/creditpulse/cibil-service/internal/utils/email"
)

func main() {
	godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var mailer *email.Sender
	if cfg.AlertsEnabled() {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, cfg, mailer)
	h := handler.NewHandler(svc)

	// Retention job for stored analyses
	c := cron.New()
	if _, err := c.AddFunc(cfg.RetentionSchedule, svc.PurgeExpiredAnalyses); err != nil {
		logger.Fatalf("Failed to schedule retention job: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/legend", h.Legend).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/analyze", h.Analyze).Methods("POST")
	authRouter.HandleFunc("/analyses", h.ListAnalyses).Methods("GET")
	authRouter.HandleFunc("/analyses/{id}", h.GetAnalysis).Methods("GET")
	authRouter.HandleFunc("/analyses/{id}/accounts.csv", h.AccountsCSV).Methods("GET")
	authRouter.HandleFunc("/analyses/{id}/missed.csv", h.MissedPaymentsCSV).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
