package events

import (
	"time"

	"github.com/google/uuid"

	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
)

// DomainEvent is something that happened to an aggregate.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

const (
	TypeEssaySubmitted = "essay.submitted"
	TypeEssayCompleted = "essay.completed"
	TypeEssayFailed    = "essay.failed"
)

// EssaySubmitted is raised once a new essay is stored and queued.
type EssaySubmitted struct {
	BaseEvent
	UserID     string                  `json:"user_id"`
	AIProvider valueobjects.AIProvider `json:"ai_provider"`
	HasFile    bool                    `json:"has_file"`
}

// NewEssaySubmitted creates an EssaySubmitted event
func NewEssaySubmitted(essay *entities.Essay, timestamp time.Time) EssaySubmitted {
	return EssaySubmitted{
		BaseEvent:  newBase(essay.ID, TypeEssaySubmitted, timestamp),
		UserID:     essay.UserID,
		AIProvider: essay.AIProvider,
		HasFile:    essay.HasFile(),
	}
}

// EssayCompleted is raised when a correction has been stored.
type EssayCompleted struct {
	BaseEvent
	UserID           string                  `json:"user_id"`
	AIProvider       valueobjects.AIProvider `json:"ai_provider"`
	TotalScore       int                     `json:"total_score"`
	ProcessingTimeMs int64                   `json:"processing_time_ms"`
}

// NewEssayCompleted creates an EssayCompleted event
func NewEssayCompleted(essayID, userID string, provider valueobjects.AIProvider, c *entities.Correction, timestamp time.Time) EssayCompleted {
	return EssayCompleted{
		BaseEvent:        newBase(essayID, TypeEssayCompleted, timestamp),
		UserID:           userID,
		AIProvider:       provider,
		TotalScore:       c.TotalScore,
		ProcessingTimeMs: c.ProcessingTimeMs,
	}
}

// EssayFailed is raised when processing ended in the failed status.
type EssayFailed struct {
	BaseEvent
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// NewEssayFailed creates an EssayFailed event
func NewEssayFailed(essayID, userID, reason string, timestamp time.Time) EssayFailed {
	return EssayFailed{
		BaseEvent: newBase(essayID, TypeEssayFailed, timestamp),
		UserID:    userID,
		Reason:    reason,
	}
}

func newBase(id, eventType string, ts time.Time) BaseEvent {
	return BaseEvent{EventID: uuid.NewString(), AggregateID: id, EventType: eventType, Timestamp: ts.UTC(), Version: 1}
}
