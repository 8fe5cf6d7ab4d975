package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/creditpulse/cibil-service/internal/config"
	"github.com/creditpulse/cibil-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendRiskAlert notifies the configured recipient that an analysis
// surfaced write-offs or recent 30+ DPD months
func (s *Sender) SendRiskAlert(analysis *models.Analysis) error {
	m := analysis.Metrics
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.AlertRecipient}
	e.Subject = fmt.Sprintf("Credit Risk Alert: %s", analysis.PersonName)

	body := fmt.Sprintf(
		"Analysis %s (reference date %s) flagged elevated credit risk for %s.\n\n",
		analysis.ID, analysis.ReferenceDate.Format("2006-01-02"), analysis.PersonName,
	)
	body += fmt.Sprintf(
		"Write-offs: %d\n"+
			"30+ DPD in last 6 months: %d\n"+
			"30+ DPD in last 12 months: %d\n"+
			"Max DPD in last 12 months: %d\n"+
			"Missed payments on record: %d\n",
		m.WriteOffCount, m.DPD30In6M, m.DPD30In12M, m.MaxDPD12M, m.MissedPayments,
	)
	body += "\nBest regards,\nBureau Analyzer"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send risk alert to %s: %v", s.cfg.AlertRecipient, err)
		return fmt.Errorf("failed to send risk alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.AlertRecipient, e.Subject)
	return nil
}
