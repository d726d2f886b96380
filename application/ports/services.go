package ports

import (
	"context"
	"time"

	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	"essay-backend/domain/events"
)

// BlobStorage stores uploaded essay files.
type BlobStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error)
	GetObject(ctx context.Context, key string) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
}

// ProcessEssayMessage is the queue payload that triggers grading.
type ProcessEssayMessage struct {
	EssayID    string                  `json:"essayId"`
	UserID     string                  `json:"userId"`
	AIProvider valueobjects.AIProvider `json:"aiProvider"`
}

// Queue enqueues JSON messages.
type Queue interface {
	Send(ctx context.Context, message interface{}, delay time.Duration) error
}

// TextExtractor returns the plain text of a stored file.
type TextExtractor interface {
	ExtractText(ctx context.Context, fileKey string, fileType valueobjects.FileType) (string, error)
}

// GradeRequest is the input of a grading call.
type GradeRequest struct {
	Title string
	Text  string
}

// Grader scores an essay against the five competency rubric. It fails
// unless all five competencies come back valid.
type Grader interface {
	Grade(ctx context.Context, req GradeRequest) (*entities.Evaluation, error)
}

// GraderRegistry resolves the grader registered for a provider.
type GraderRegistry interface {
	Grader(provider valueobjects.AIProvider) (Grader, error)
}

// EventPublisher publishes domain events. Callers treat failures as
// non-fatal.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordEssayGraded(ctx context.Context, provider string, totalScore int, latency time.Duration)
}

// Tracer wraps a step in a trace span.
type Tracer interface {
	TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error
	AddAnnotation(ctx context.Context, key, value string)
}
