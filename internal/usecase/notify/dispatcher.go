package notify

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	"github.com/johnquangdev/meeting-notes/pkg/deadline"
)

// Policy bounds delivery. Only timed-out sends are retried.
type Policy struct {
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// PolicyFromConfig reads the delivery policy from mail configuration
func PolicyFromConfig(cfg config.MailConfig) Policy {
	return Policy{
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxAttempts,
		RetryDelay:  cfg.RetryDelay,
	}
}

// Sender delivers a notification and reports the outcome
type Sender interface {
	Send(ctx context.Context, n entities.Notification) *entities.DeliveryResult
}

// Dispatcher renders notifications and sends them to the fixed recipient
type Dispatcher struct {
	mailer    repositories.Mailer
	from      string
	recipient string
	policy    Policy
	logger    *zap.Logger
}

// NewDispatcher creates a Dispatcher
func NewDispatcher(mailer repositories.Mailer, from, recipient string, policy Policy, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Dispatcher{
		mailer:    mailer,
		from:      from,
		recipient: recipient,
		policy:    policy,
		logger:    logger,
	}
}

// Send renders n and delivers it. It never returns an error; failures are
// reported through the result so callers can leave the record unsent.
func (d *Dispatcher) Send(ctx context.Context, n entities.Notification) *entities.DeliveryResult {
	result := &entities.DeliveryResult{}

	html, err := RenderHTML(n)
	if err != nil {
		result.Message = err.Error()
		return result
	}
	email := &entities.Email{
		From:    d.from,
		To:      []string{d.recipient},
		Subject: Subject(n.MeetingName),
		HTML:    html,
		Text:    RenderText(n),
	}

	attempt := 0
	send := func() error {
		attempt++
		rec := entities.NewDeliveryAttempt(n, attempt, email.Subject)

		id, err := deadline.Run(ctx, "mail.send", d.policy.Timeout, func(ctx context.Context) (string, error) {
			return d.mailer.Send(ctx, email)
		})
		if err != nil {
			rec.Outcome = entities.DeliveryFailed
			rec.Reason = err.Error()
			result.Attempts = append(result.Attempts, *rec)
			if deadline.IsTimeout(err) {
				return err
			}
			return backoff.Permanent(err)
		}

		rec.Outcome = entities.DeliverySucceeded
		rec.MessageID = id
		result.Attempts = append(result.Attempts, *rec)
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(d.policy.RetryDelay), uint64(d.policy.MaxAttempts-1)),
		ctx,
	)
	err = backoff.RetryNotify(send, bo, func(err error, wait time.Duration) {
		d.logger.Warn("⏳ Email send timed out, retrying",
			zap.String("record_id", n.RecordID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", d.policy.MaxAttempts),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
	})

	if err != nil {
		if deadline.IsTimeout(err) {
			result.Message = fmt.Sprintf("Email sending timed out after %d attempts", attempt)
		} else {
			result.Message = fmt.Sprintf("Failed to send email: %v", err)
		}
		d.logger.Error("❌ Failed to send summary email",
			zap.String("record_id", n.RecordID),
			zap.String("meeting_name", n.MeetingName),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return result
	}

	result.Sent = true
	result.Message = "Email sent successfully"
	d.logger.Info("📧 Summary email sent",
		zap.String("record_id", n.RecordID),
		zap.String("meeting_name", n.MeetingName),
		zap.Int("attempts", attempt),
	)
	return result
}
