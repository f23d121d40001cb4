package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// meetingRecordRow is the meeting_records table row
type meetingRecordRow struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingName  string         `gorm:"type:text;not null"`
	Summary      string         `gorm:"type:text;not null;default:''"`
	ActionItems  string         `gorm:"type:text;not null;default:''"`
	KeyQuestions string         `gorm:"type:text;not null;default:''"`
	RecordDate   datatypes.Date `gorm:"not null"`
	Sent         bool           `gorm:"not null;default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name
func (meetingRecordRow) TableName() string {
	return "meeting_records"
}

// PostgresRecordRepository stores records in PostgreSQL through GORM
type PostgresRecordRepository struct {
	db        *gorm.DB
	urlPrefix string
}

// NewPostgresRecordRepository creates a new postgres record repository
func NewPostgresRecordRepository(db *gorm.DB, urlPrefix string) *PostgresRecordRepository {
	return &PostgresRecordRepository{db: db, urlPrefix: urlPrefix}
}

// Backend names the store implementation
func (r *PostgresRecordRepository) Backend() string { return "postgres" }

// Create inserts a new record
func (r *PostgresRecordRepository) Create(ctx context.Context, props entities.Properties) (*entities.MeetingRecord, error) {
	flat, err := flatten(props)
	if err != nil {
		return nil, err
	}

	row := &meetingRecordRow{
		ID:           uuid.New(),
		MeetingName:  flat.MeetingName,
		Summary:      flat.Summary,
		ActionItems:  flat.ActionItems,
		KeyQuestions: flat.KeyQuestions,
		RecordDate:   datatypes.Date(flat.Date),
		Sent:         flat.Sent,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return r.toRecord(row), nil
}

// QueryUnsent returns up to limit unsent records, oldest first
func (r *PostgresRecordRepository) QueryUnsent(ctx context.Context, limit int) (*entities.RecordPage, error) {
	var rows []meetingRecordRow
	err := r.db.WithContext(ctx).
		Where("sent = ?", false).
		Order("created_at ASC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	page := &entities.RecordPage{Records: make([]entities.MeetingRecord, 0, len(rows))}
	if len(rows) > limit {
		page.HasMore = true
		rows = rows[:limit]
	}
	for i := range rows {
		page.Records = append(page.Records, *r.toRecord(&rows[i]))
	}
	return page, nil
}

// MarkSent sets sent = true
func (r *PostgresRecordRepository) MarkSent(ctx context.Context, id string) error {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return entities.ErrRecordNotFound
	}

	result := r.db.WithContext(ctx).
		Model(&meetingRecordRow{}).
		Where("id = ?", recordID).
		Update("sent", true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entities.ErrRecordNotFound
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresRecordRepository) toRecord(row *meetingRecordRow) *entities.MeetingRecord {
	flat := flatRecord{
		MeetingName:  row.MeetingName,
		Summary:      row.Summary,
		ActionItems:  row.ActionItems,
		KeyQuestions: row.KeyQuestions,
		Date:         time.Time(row.RecordDate),
		Sent:         row.Sent,
	}
	id := row.ID.String()
	return &entities.MeetingRecord{
		ID:         id,
		URL:        recordURL(r.urlPrefix, id),
		Properties: flat.properties(),
		CreatedAt:  row.CreatedAt,
	}
}
