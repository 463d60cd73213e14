package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"commune/internal/auth"
	"commune/internal/cache"
	apperrors "commune/internal/errors"
	"commune/internal/model"
	"commune/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	// Register creates a user with a hashed password. Username and email
	// must both be unused.
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Login verifies the password for the email's account and issues a
	// session token.
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	users       repository.UserRepository
	credentials *auth.CredentialManager
	tokens      *auth.TokenService
	cache       *cache.Client
}

// NewAuthService creates an authentication service.
func NewAuthService(users repository.UserRepository, credentials *auth.CredentialManager, tokens *auth.TokenService, cache *cache.Client) AuthService {
	return &authService{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		cache:       cache,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.credentials.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// concurrent registration can still hit the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, usersCacheKey)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrEmailNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !s.credentials.Verify(user.PasswordHash, password) {
		return "", nil, apperrors.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
