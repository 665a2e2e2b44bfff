package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/spend-forecast/internal/config"
	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// SendFunc delivers a prepared message; it matches (*email.Email).Send
type SendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   SendFunc
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// WithSendFunc replaces the SMTP transport, mainly for tests
func (s *Sender) WithSendFunc(fn SendFunc) *Sender {
	s.send = fn
	return s
}

// BuildForecastDigest prepares the digest message for one recipient
func (s *Sender) BuildForecastDigest(to string, summary *models.ForecastSummary) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your %d-day spending forecast", summary.ForecastDays)

	body := "Hello,\n\n"
	body += fmt.Sprintf(
		"Based on %d days of spending history, we expect you to spend about %.2f over the next %d days.\n",
		summary.HistoryDays, summary.PredictedTotal, summary.ForecastDays,
	)
	if summary.PeakDate != "" {
		body += fmt.Sprintf("Your busiest day should be %s with roughly %.2f.\n", summary.PeakDate, summary.PeakAmount)
	}
	body += "\nBest regards,\nSpending Forecast"
	e.Text = []byte(body)
	return e
}

// SendForecastDigest emails a forecast summary
func (s *Sender) SendForecastDigest(to string, summary *models.ForecastSummary) error {
	e := s.BuildForecastDigest(to, summary)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send forecast digest to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
