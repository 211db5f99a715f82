package email

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/calc-hub/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

func newTestSender() *Sender {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewSender(&config.Config{
		SenderEmail: "noreply@calc.example.org",
		NotifyEmail: "editors@calc.example.org",
		SiteBaseURL: "https://calc.example.org",
	}, log)
}

func TestSendContentChange(t *testing.T) {
	s := newTestSender()
	var sent *email.Email
	s.send = func(e *email.Email) error {
		sent = e
		return nil
	}

	err := s.SendContentChange(ContentChange{
		Action: "updated",
		Kind:   "promos",
		ID:     "42",
		Actor:  "admin@calc.example.org",
		At:     time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("SendContentChange: %v", err)
	}
	if sent == nil {
		t.Fatal("no email sent")
	}
	if sent.To[0] != "editors@calc.example.org" || sent.From != "noreply@calc.example.org" {
		t.Errorf("envelope = %v from %s", sent.To, sent.From)
	}
	if sent.Subject != "Homepage promos item updated" {
		t.Errorf("subject = %q", sent.Subject)
	}
	body := string(sent.Text)
	for _, want := range []string{"promos item 42 was updated by admin@calc.example.org", "2026-10-17 08:30:00", "/api/v1/content/promos"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestSendContentChangeError(t *testing.T) {
	s := newTestSender()
	s.send = func(*email.Email) error { return errors.New("connection refused") }

	err := s.SendContentChange(ContentChange{Action: "deleted", Kind: "games", ID: "1", At: time.Now()})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("err = %v, want wrapped send failure", err)
	}
}
