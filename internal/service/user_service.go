package service

import (
	"context"
	"encoding/json"
	"time"

	"commune/internal/cache"
	"commune/internal/model"
	"commune/internal/repository"
)

const (
	usersCacheKey = "users:all"
	usersCacheTTL = time.Minute
)

// UserService exposes user read operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(users repository.UserRepository, cache *cache.Client) UserService {
	return &userService{users: users, cache: cache}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	if data, _ := s.cache.Get(ctx, usersCacheKey); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	// PasswordHash is excluded from JSON, so hashes never reach the cache.
	if payload, err := json.Marshal(users); err == nil {
		_ = s.cache.Set(ctx, usersCacheKey, payload, usersCacheTTL)
	}
	return users, nil
}
