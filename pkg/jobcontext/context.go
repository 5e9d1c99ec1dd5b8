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
	keyRetryAttempt KeyContext = "retry_attempt"
	keyJobStartTime KeyContext = "job_start_time"
)

// JobMetadata describes one remote operation while it runs
type JobMetadata struct {
	JobID        uuid.UUID
	JobType      string
	RetryAttempt int
	StartTime    time.Time
}

// JobBegin tags ctx with a fresh operation id, its type and start time.
// An already tagged context keeps its id so nested calls log under one job.
func JobBegin(parentCtx context.Context, jobType string) context.Context {
	if _, ok := GetJobID(parentCtx); ok {
		return context.WithValue(parentCtx, keyJobType, jobType)
	}

	ctx := context.WithValue(parentCtx, keyJobID, uuid.New())
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyRetryAttempt, 0)
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

// GetRetryAttempt extracts current retry attempt from context
func GetRetryAttempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyRetryAttempt).(int)
	if !ok {
		return 0
	}
	return attempt
}

// SetRetryAttempt updates retry attempt in context
func SetRetryAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, keyRetryAttempt, attempt)
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
		JobID:        jobID,
		JobType:      jobType,
		RetryAttempt: GetRetryAttempt(ctx),
		StartTime:    startTime,
	}
}

// Fields renders the job metadata as zap fields. Untagged contexts yield none.
func Fields(ctx context.Context) []zap.Field {
	meta := GetJobMetadata(ctx)
	if meta.JobID == uuid.Nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("job_id", meta.JobID.String()),
		zap.String("job_type", meta.JobType),
	}
	if meta.RetryAttempt > 0 {
		fields = append(fields, zap.Int("retry_attempt", meta.RetryAttempt))
	}
	if !meta.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(meta.StartTime)))
	}
	return fields
}
