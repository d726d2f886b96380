package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "essay-backend/pkg/errors"
)

type signUpLike struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"required,min=2"`
	Size     int64  `json:"fileSize" validate:"gt=0"`
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Passw0rd!", true},
		{"short1!A", true},
		{"Sh0rt!", false},
		{"password1!", false},
		{"PASSWORD1!", false},
		{"Password!!", false},
		{"Password11", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(signUpLike{Email: "a@b.com", Password: "Passw0rd!", Name: "Ana", Size: 1})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := ValidateStruct(signUpLike{Email: "nope", Password: "weak", Name: "A"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))

		msg := apperrors.GetAppError(err).Message
		assert.Contains(t, msg, "email must be a valid email")
		assert.Contains(t, msg, "password must have at least 8 characters")
		assert.Contains(t, msg, "name must be at least 2 characters")
		assert.Contains(t, msg, "fileSize must be greater than 0")
	})
}
