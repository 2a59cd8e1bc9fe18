package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/rahat-sukari/api/internal/config"
)

// Service sends transactional mail. All sends are best-effort: callers
// log failures and carry on.
type Service interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendAppointmentOutcome(ctx context.Context, to, doctorName string, accepted bool) error
	SendCustom(ctx context.Context, to, subject, body string) error
}

type service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg config.SMTPConfig) Service {
	return &service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *service) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to Rahat Sukari. Your account is ready.", name)
	return s.SendCustom(ctx, to, "Welcome to Rahat Sukari", body)
}

func (s *service) SendAppointmentOutcome(ctx context.Context, to, doctorName string, accepted bool) error {
	outcome := "confirmed"
	if !accepted {
		outcome = "rejected"
	}
	body := fmt.Sprintf("Dr. %s has %s your appointment request.", doctorName, outcome)
	return s.SendCustom(ctx, to, "Appointment "+outcome, body)
}

func (s *service) SendCustom(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NopService satisfies Service when SMTP is disabled.
type NopService struct{}

func (NopService) SendWelcome(ctx context.Context, to, name string) error { return nil }

func (NopService) SendAppointmentOutcome(ctx context.Context, to, doctorName string, accepted bool) error {
	return nil
}

func (NopService) SendCustom(ctx context.Context, to, subject, body string) error { return nil }
