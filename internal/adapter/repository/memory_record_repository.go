package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// MemoryRecordRepository keeps records in process memory. Records are lost on
// restart; use it for local runs and tests.
type MemoryRecordRepository struct {
	mu        sync.RWMutex
	order     []string
	records   map[string]*entities.MeetingRecord
	urlPrefix string
}

// NewMemoryRecordRepository creates an empty in-memory store
func NewMemoryRecordRepository(urlPrefix string) *MemoryRecordRepository {
	return &MemoryRecordRepository{
		records:   make(map[string]*entities.MeetingRecord),
		urlPrefix: urlPrefix,
	}
}

// Backend names the store implementation
func (r *MemoryRecordRepository) Backend() string { return "memory" }

// Create stores a copy of props under a new id
func (r *MemoryRecordRepository) Create(_ context.Context, props entities.Properties) (*entities.MeetingRecord, error) {
	flat, err := flatten(props)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	rec := &entities.MeetingRecord{
		ID:         id,
		URL:        recordURL(r.urlPrefix, id),
		Properties: flat.properties(),
		CreatedAt:  time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[id] = rec
	r.order = append(r.order, id)

	return copyRecord(rec), nil
}

// QueryUnsent returns unsent records oldest first
func (r *MemoryRecordRepository) QueryUnsent(_ context.Context, limit int) (*entities.RecordPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page := &entities.RecordPage{Records: []entities.MeetingRecord{}}
	for _, id := range r.order {
		rec := r.records[id]
		if rec.Sent() {
			continue
		}
		if len(page.Records) == limit {
			page.HasMore = true
			break
		}
		page.Records = append(page.Records, *copyRecord(rec))
	}
	return page, nil
}

// MarkSent flips the Sent flag; marking twice is harmless
func (r *MemoryRecordRepository) MarkSent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return entities.ErrRecordNotFound
	}
	rec.Properties[entities.PropSent] = entities.CheckboxProperty(true)
	return nil
}

func copyRecord(rec *entities.MeetingRecord) *entities.MeetingRecord {
	out := *rec
	out.Properties = make(entities.Properties, len(rec.Properties))
	for k, v := range rec.Properties {
		out.Properties[k] = v
	}
	return &out
}
