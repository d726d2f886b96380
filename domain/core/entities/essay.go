package entities

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"essay-backend/domain/core/valueobjects"
)

const MaxTitleLength = 200

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title must be at most 200 characters")
	ErrNoContentSource  = errors.New("either content or fileKey must be provided")
	ErrFileTypeRequired = errors.New("fileType is required when fileKey is provided")
)

// Essay is a submission owned by exactly one user.
type Essay struct {
	ID            string                   `json:"essayId"`
	UserID        string                   `json:"userId"`
	Title         string                   `json:"title"`
	Content       string                   `json:"content,omitempty"`
	FileKey       string                   `json:"fileKey,omitempty"`
	FileType      valueobjects.FileType    `json:"fileType,omitempty"`
	Status        valueobjects.EssayStatus `json:"status"`
	ExtractedText string                   `json:"extractedText,omitempty"`
	Correction    *Correction              `json:"correction,omitempty"`
	AIProvider    valueobjects.AIProvider  `json:"aiProvider"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

// NewEssayParams carries a submission before it has an id.
type NewEssayParams struct {
	UserID     string
	Title      string
	Content    string
	FileKey    string
	FileType   valueobjects.FileType
	AIProvider valueobjects.AIProvider
}

// NewEssay builds a pending essay. Blank content counts as absent.
func NewEssay(p NewEssayParams, now time.Time) (*Essay, error) {
	title := strings.TrimSpace(p.Title)
	switch {
	case title == "":
		return nil, ErrTitleRequired
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return nil, ErrTitleTooLong
	}

	content := p.Content
	if strings.TrimSpace(content) == "" {
		content = ""
	}
	if content == "" && p.FileKey == "" {
		return nil, ErrNoContentSource
	}
	if p.FileKey != "" && p.FileType == "" {
		return nil, ErrFileTypeRequired
	}

	provider := p.AIProvider
	if provider == "" {
		provider = valueobjects.DefaultAIProvider
	}

	return &Essay{
		ID:         valueobjects.NewEssayID(),
		UserID:     p.UserID,
		Title:      title,
		Content:    content,
		FileKey:    p.FileKey,
		FileType:   p.FileType,
		Status:     valueobjects.StatusPending,
		AIProvider: provider,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}, nil
}

// HasFile reports whether the essay text must be extracted from a stored file.
func (e *Essay) HasFile() bool {
	return e.FileKey != ""
}

// IsOwnedBy reports whether userID owns the essay
func (e *Essay) IsOwnedBy(userID string) bool {
	return e.UserID == userID
}
