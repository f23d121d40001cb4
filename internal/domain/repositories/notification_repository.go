package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// Mailer delivers a rendered email and returns the transport's message ID
type Mailer interface {
	Send(ctx context.Context, email *entities.Email) (string, error)
}
