package entities

import (
	"strings"
	"time"
)

// User mirrors an identity issued by the identity provider.
type User struct {
	ID          string    `json:"userId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewUser creates the mirror record for a freshly registered identity.
func NewUser(id, email, name, phone string, now time.Time) *User {
	return &User{
		ID:          id,
		Email:       NormalizeEmail(email),
		Name:        strings.TrimSpace(name),
		PhoneNumber: phone,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
