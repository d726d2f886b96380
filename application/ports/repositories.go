package ports

import (
	"context"

	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
)

// ListOptions pages through an index. NextToken is opaque to callers.
type ListOptions struct {
	Limit     int
	NextToken string
}

// EssayPage is one page of essays, newest first.
type EssayPage struct {
	Items     []*entities.Essay
	NextToken string
}

// EssayUpdate holds the mutable essay fields; nil fields are left as is.
type EssayUpdate struct {
	Status        *valueobjects.EssayStatus
	ExtractedText *string
	Correction    *entities.Correction
	// ClearCorrection removes a correction left by an earlier run.
	// Ignored when Correction is set.
	ClearCorrection bool
}

// EssayRepository persists essays under their owner's partition.
type EssayRepository interface {
	// Create stores a new essay with its owner and status projections
	Create(ctx context.Context, essay *entities.Essay) error

	// FindByID returns a NotFound error when the owner has no such essay
	FindByID(ctx context.Context, userID, essayID string) (*entities.Essay, error)

	// Update applies the non-nil fields and refreshes the status projection.
	// Missing essays yield NotFound.
	Update(ctx context.Context, userID, essayID string, update EssayUpdate) error

	Delete(ctx context.Context, userID, essayID string) error

	// ListByUser queries the owner index, newest first
	ListByUser(ctx context.Context, userID string, opts ListOptions) (*EssayPage, error)

	// ListByStatus queries the status index restricted to one owner
	ListByStatus(ctx context.Context, userID string, status valueobjects.EssayStatus, opts ListOptions) (*EssayPage, error)
}

// UserUpdate holds the editable profile fields; nil fields are left as is.
type UserUpdate struct {
	Name        *string
	PhoneNumber *string
}

// UserRepository persists the application side mirror of identities.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error

	// FindByID returns a NotFound error when absent
	FindByID(ctx context.Context, userID string) (*entities.User, error)

	// FindByEmail returns (nil, nil) when no user has the email
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// Update applies the non-nil fields and returns the stored user
	Update(ctx context.Context, userID string, update UserUpdate) (*entities.User, error)
}
