package commands

// SignUpCommand registers a new user
type SignUpCommand struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,password"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,e164"`
}

// SignUpResult is returned after the identity provider accepted the user
type SignUpResult struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	UserConfirmed bool   `json:"userConfirmed"`
}

type SignInCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ConfirmSignUpCommand struct {
	Email            string `json:"email" validate:"required,email"`
	ConfirmationCode string `json:"confirmationCode" validate:"required"`
}

// ConfirmSignUpResult acknowledges a confirmed account
type ConfirmSignUpResult struct {
	Message   string `json:"message"`
	Confirmed bool   `json:"confirmed"`
}

type RefreshTokenCommand struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ForgotPasswordCommand struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmForgotPasswordCommand struct {
	Email            string `json:"email" validate:"required,email"`
	ConfirmationCode string `json:"confirmationCode" validate:"required"`
	NewPassword      string `json:"newPassword" validate:"required,password"`
}

// ChangePasswordCommand changes the password of the user holding
// AccessToken.
type ChangePasswordCommand struct {
	AccessToken string `json:"-"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// MessageResult is the body of flows that only acknowledge
type MessageResult struct {
	Message string `json:"message"`
}

// UpdateProfileCommand edits the caller's profile; nil fields are kept
type UpdateProfileCommand struct {
	UserID      string  `json:"-" validate:"required"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,e164"`
}
