package queries

import "essay-backend/domain/core/entities"

// GetEssayQuery represents a query to get a single essay
type GetEssayQuery struct {
	UserID  string `validate:"required"`
	EssayID string `validate:"required"`
}

// EssayResult is an essay plus a short lived download link for its file
type EssayResult struct {
	*entities.Essay
	FileURL string `json:"fileUrl,omitempty"`
}

// ListEssaysQuery lists the caller's essays, optionally by status
type ListEssaysQuery struct {
	UserID    string `validate:"required"`
	Status    string `json:"status" validate:"omitempty,oneof=pending processing completed failed"`
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=100"`
	NextToken string `json:"nextToken"`
}

// ListEssaysResult is one page of essays
type ListEssaysResult struct {
	Items     []*entities.Essay `json:"items"`
	NextToken string            `json:"nextToken,omitempty"`
}

// GetProfileQuery represents a query for the caller's profile
type GetProfileQuery struct {
	UserID string `validate:"required"`
}
