package mail

import (
	"context"
	"fmt"
	"net/url"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// Mailer sends email through the Resend API
type Mailer struct {
	client *resend.Client
	logger *zap.Logger
}

// NewMailer creates a Resend mailer
func NewMailer(apiKey string, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{
		client: resend.NewClient(apiKey),
		logger: logger,
	}
}

// WithBaseURL points the client at another API host
func (m *Mailer) WithBaseURL(raw string) (*Mailer, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid resend base url: %w", err)
	}
	m.client.BaseURL = u
	return m, nil
}

// Send delivers one email and returns the Resend message id
func (m *Mailer) Send(ctx context.Context, email *entities.Email) (string, error) {
	resp, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}

	m.logger.Debug("📧 Email accepted by Resend",
		zap.String("message_id", resp.Id),
		zap.Strings("to", email.To),
	)
	return resp.Id, nil
}
