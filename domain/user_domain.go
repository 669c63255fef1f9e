package domain

import "time"

const TokenTypeBearer = "bearer"

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetUser  = "success get user"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetUser  = "failed to get user"

	ErrEmailAlreadyRegistered = NewError(ErrConflict, "email already registered")
	ErrUsernameTaken          = NewError(ErrConflict, "username already taken")
	ErrInvalidCredentials     = NewError(ErrUnauthorized, "invalid credentials")
	ErrUserNotFound           = NewError(ErrNotFound, "user not found")
	ErrPasswordEmpty          = NewError(ErrValidation, "password cannot be empty")
	ErrPasswordTooLong        = NewError(ErrValidation, "password exceeds maximum length")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,min=3,max=50"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	RegisterResponse struct {
		ID          string `json:"id"`
		Username    string `json:"username"`
		Email       string `json:"email"`
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	LoginRequest struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	}

	// Owner is the public view of a user embedded in other payloads.
	Owner struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
)
