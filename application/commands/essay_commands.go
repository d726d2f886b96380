package commands

import "essay-backend/domain/core/entities"

// CreateEssayCommand submits an essay for grading. Exactly one of Content
// or FileKey is expected; FileKey must come from an upload URL issued to
// the same user.
type CreateEssayCommand struct {
	UserID     string `json:"-" validate:"required"`
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content,omitempty" validate:"max=50000"`
	FileKey    string `json:"fileKey,omitempty" validate:"max=512"`
	FileType   string `json:"fileType,omitempty" validate:"omitempty,oneof=image pdf docx text"`
	AIProvider string `json:"aiProvider,omitempty" validate:"omitempty,oneof=claude openai"`
}

// ProcessEssayCommand grades a pending essay. It is built from a queue
// message. AIProvider is checked against the registered graders while
// processing, so an unknown provider fails the essay.
type ProcessEssayCommand struct {
	EssayID    string `json:"essayId" validate:"required"`
	UserID     string `json:"userId" validate:"required"`
	AIProvider string `json:"aiProvider"`
}

// DeleteEssayCommand removes an essay and its uploaded file
type DeleteEssayCommand struct {
	UserID  string `validate:"required"`
	EssayID string `validate:"required"`
}

// GetUploadURLCommand asks for a presigned upload URL
type GetUploadURLCommand struct {
	UserID   string `json:"-" validate:"required"`
	FileName string `json:"fileName" validate:"required,max=255"`
	FileType string `json:"fileType" validate:"required"`
	FileSize int64  `json:"fileSize" validate:"required,gt=0"`
}

// UploadURLResult is the response of GetUploadURLCommand
type UploadURLResult struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresIn int    `json:"expiresIn"`
}

// ProcessEssayResult reports the outcome of a grading run
type ProcessEssayResult struct {
	Essay      *entities.Essay
	Correction *entities.Correction
}
