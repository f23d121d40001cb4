package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// RecordStore defines the interface for meeting record persistence
type RecordStore interface {
	// Create persists a new record and returns it with its assigned ID and URL
	Create(ctx context.Context, props entities.Properties) (*entities.MeetingRecord, error)

	// QueryUnsent returns up to limit records whose Sent flag is false
	QueryUnsent(ctx context.Context, limit int) (*entities.RecordPage, error)

	// MarkSent sets the Sent flag of a record to true
	MarkSent(ctx context.Context, id string) error

	// Backend names the store implementation, for logs
	Backend() string
}
