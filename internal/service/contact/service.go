package contact

import (
	"context"
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/findamedi/clinics-api/internal/config"
	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/pkg/logger"
	"github.com/findamedi/clinics-api/pkg/metrics"
)

type ContactServicer interface {
	Submit(ctx context.Context, sub *model.ContactSubmission) error
}

// Service records contact-form submissions. Submissions are logged and,
// when SMTP is configured, forwarded to the operators' inbox. Nothing is
// persisted.
type Service struct {
	smtp    config.SMTPConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(smtp config.SMTPConfig, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		smtp:    smtp,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *Service) Submit(ctx context.Context, sub *model.ContactSubmission) error {
	if sub.ReceivedAt.IsZero() {
		sub.ReceivedAt = time.Now()
	}

	s.logger.Info("contact form submission",
		"name", sub.Name,
		"email", sub.Email,
		"subject", sub.Subject,
		"received_at", sub.ReceivedAt.Format(time.RFC3339),
	)
	s.metrics.ContactSubmissions.Inc()

	if !s.smtp.Enabled {
		return nil
	}

	if err := s.sendMail(sub); err != nil {
		// Mail delivery is best effort; the submission is already logged.
		s.logger.Error(err, "failed to forward contact submission")
	}
	return nil
}

func (s *Service) sendMail(sub *model.ContactSubmission) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.smtp.From)
	m.SetHeader("To", s.smtp.To)
	m.SetHeader("Reply-To", sub.Email)
	m.SetHeader("Subject", fmt.Sprintf("[findamedi] %s", sub.Subject))
	m.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", sub.Name, sub.Email, sub.Message))

	d := gomail.NewDialer(s.smtp.Host, s.smtp.Port, s.smtp.Username, s.smtp.Password)
	return d.DialAndSend(m)
}
