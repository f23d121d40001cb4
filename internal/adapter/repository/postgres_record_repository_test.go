package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

var recordColumns = []string{
	"id", "meeting_name", "summary", "action_items", "key_questions",
	"record_date", "sent", "created_at", "updated_at",
}

func newPostgresRepo(t *testing.T) (*PostgresRecordRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewPostgresRecordRepository(db, "https://notes.example.com/r/"), mock
}

func addRecordRow(rows *sqlmock.Rows, id uuid.UUID, name string, created time.Time) *sqlmock.Rows {
	return rows.AddRow(id.String(), name, "summary of "+name, "• ship it", "", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), false, created, created)
}

func TestPostgresRecordRepository_QueryUnsentFetchesOneExtraRow(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	first, second := uuid.New(), uuid.New()
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(recordColumns)
	addRecordRow(rows, first, "Standup", base)
	addRecordRow(rows, second, "Retro", base.Add(time.Minute))
	addRecordRow(rows, uuid.New(), "Planning", base.Add(2*time.Minute))

	mock.ExpectQuery(`SELECT \* FROM "meeting_records" WHERE sent = \$1 ORDER BY created_at ASC LIMIT`).
		WillReturnRows(rows)

	page, err := repo.QueryUnsent(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, page.HasMore)
	require.Len(t, page.Records, 2)

	rec := page.Records[0]
	assert.Equal(t, first.String(), rec.ID)
	assert.Equal(t, "https://notes.example.com/r/"+first.String(), rec.URL)
	assert.Equal(t, "2025-03-14", rec.Properties[entities.PropDate].Date.Start)
	assert.False(t, rec.Sent())
	assert.Equal(t, second.String(), page.Records[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordRepository_QueryUnsentLastPage(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	rows := sqlmock.NewRows(recordColumns)
	addRecordRow(rows, uuid.New(), "Standup", time.Now())
	mock.ExpectQuery(`SELECT \* FROM "meeting_records"`).WillReturnRows(rows)

	page, err := repo.QueryUnsent(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Len(t, page.Records, 1)
}

func TestPostgresRecordRepository_QueryUnsentError(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "meeting_records"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.QueryUnsent(context.Background(), 2)
	assert.EqualError(t, err, "connection reset")
}

func TestPostgresRecordRepository_Create(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(`INSERT INTO "meeting_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

	rec, err := repo.Create(context.Background(), newProps("Standup"))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	name, err := rec.Properties.FirstText(entities.PropMeetingName, entities.PropertyTypeTitle)
	require.NoError(t, err)
	assert.Equal(t, "Standup", name)
	assert.Equal(t, "2025-03-14", rec.Properties[entities.PropDate].Date.Start)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordRepository_MarkSent(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "meeting_records" SET "sent"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), id.String()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordRepository_MarkSentNotFound(t *testing.T) {
	t.Run("no matching row", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)
		mock.ExpectExec(`UPDATE "meeting_records"`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkSent(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, entities.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, mock := newPostgresRepo(t)

		err := repo.MarkSent(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, entities.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
