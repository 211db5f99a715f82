package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/calc-hub/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// ContentChange describes one admin edit
type ContentChange struct {
	Action string // created, updated, deleted
	Kind   string
	ID     string
	Actor  string
	At     time.Time
}

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
	}
	s.send = s.smtpSend
	return s
}

func (s *Sender) smtpSend(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	return e.Send(addr, auth)
}

func (s *Sender) buildContentChange(c ContentChange) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.NotifyEmail}
	e.Subject = fmt.Sprintf("Homepage %s item %s", c.Kind, c.Action)

	body := "Hello,\n\n"
	body += fmt.Sprintf(
		"The %s item %s was %s by %s.\n"+
			"Change time: %s\n",
		c.Kind, c.ID, c.Action, c.Actor, c.At.UTC().Format("2006-01-02 15:04:05 MST"),
	)
	if c.Action != "deleted" {
		body += fmt.Sprintf("Review it at %s/api/v1/content/%s\n", s.cfg.SiteBaseURL, c.Kind)
	}
	body += "\nBest regards,\nCalc Hub"
	e.Text = []byte(body)
	return e
}

// SendContentChange notifies the configured editor address about an admin edit
func (s *Sender) SendContentChange(c ContentChange) error {
	e := s.buildContentChange(c)
	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send content notification to %s: %v", s.cfg.NotifyEmail, err)
		return fmt.Errorf("failed to send content notification: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.NotifyEmail, e.Subject)
	return nil
}
