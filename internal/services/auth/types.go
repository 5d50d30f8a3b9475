package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRecord struct {
	ID       string
	Username string
	Email    string
	Password string
}

// Claims is the decoded token payload. Both access and refresh tokens carry
// only the user id.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}
