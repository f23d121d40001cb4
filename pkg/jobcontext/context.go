package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyJobType      KeyContext = "job_type"
	keyJobStartTime KeyContext = "job_start_time"
)

// Job types, one per sweep trigger
const (
	JobTypeSweepScheduled = "sweep.scheduled"
	JobTypeSweepHTTP      = "sweep.http"
	JobTypeSweepCLI       = "sweep.cli"
)

// JobMetadata holds metadata for a job execution
type JobMetadata struct {
	JobID     uuid.UUID
	JobType   string
	StartTime time.Time
}

// JobBegin tags ctx with a fresh job ID, the job type and the start time.
// An existing job ID is kept so nested calls log under the outer run.
func JobBegin(parentCtx context.Context, jobType string) context.Context {
	if _, ok := GetJobID(parentCtx); ok {
		return parentCtx
	}

	ctx := context.WithValue(parentCtx, keyJobID, uuid.New())
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())
	return ctx
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetJobStartTime extracts job start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	jobType, _ := GetJobType(ctx)
	startTime, _ := GetJobStartTime(ctx)

	return &JobMetadata{
		JobID:     jobID,
		JobType:   jobType,
		StartTime: startTime,
	}
}

// Fields returns the job metadata as log fields, or nil outside a job
func Fields(ctx context.Context) []zap.Field {
	meta := GetJobMetadata(ctx)
	if meta.JobID == uuid.Nil {
		return nil
	}

	fields := []zap.Field{
		zap.String("job_id", meta.JobID.String()),
		zap.String("job_type", meta.JobType),
	}
	if !meta.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(meta.StartTime)))
	}
	return fields
}
