package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserStore is the persistence collaborator for registration and login.
// Implementations return the package sentinels for conflict and not-found
// conditions.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, hashedPassword string) (UserRecord, error)
	GetUserByUsername(ctx context.Context, username string) (UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (UserRecord, error)
}

type Service struct {
	tokens *TokenManager
	users  UserStore
}

func NewService(tokens *TokenManager, users UserStore) *Service {
	return &Service{tokens: tokens, users: users}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return AuthResult{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return AuthResult{}, fmt.Errorf("lookup username: %w", err)
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return AuthResult{}, fmt.Errorf("lookup email: %w", err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, email, hashed)
	if err != nil {
		// Concurrent registration can still hit the unique constraint.
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
			return AuthResult{}, err
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	return s.issueForUser(user.ID)
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup email: %w", err)
	}

	if user.Password == "" || !MatchPassword(password, user.Password) {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issueForUser(user.ID)
}

// Refresh mints a fresh access token for the claim carried by a valid
// refresh token. There is no rotation and no server-side session state.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	accessToken, err := s.tokens.GenerateAccessToken(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

func (s *Service) ValidateAccessToken(accessToken string) (Claims, error) {
	return s.tokens.ParseAccessToken(accessToken)
}

func (s *Service) issueForUser(userID string) (AuthResult, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	return AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       userID,
	}, nil
}
