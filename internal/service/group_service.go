package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "commune/internal/errors"
	"commune/internal/model"
	"commune/internal/repository"
)

// GroupService handles group creation.
type GroupService interface {
	// Create stores a group. The creator is always included in the member
	// set regardless of memberIDs; additional ids must reference existing
	// users.
	Create(ctx context.Context, creatorID uuid.UUID, name, description string, memberIDs []uuid.UUID) (*model.Group, error)
}

type groupService struct {
	groups repository.GroupRepository
	users  repository.UserRepository
}

// NewGroupService creates a group service.
func NewGroupService(groups repository.GroupRepository, users repository.UserRepository) GroupService {
	return &groupService{groups: groups, users: users}
}

func (s *groupService) Create(ctx context.Context, creatorID uuid.UUID, name, description string, memberIDs []uuid.UUID) (*model.Group, error) {
	creator, err := s.users.FindByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find creator: %w", err)
	}

	members := []model.User{*creator}
	seen := map[uuid.UUID]bool{creatorID: true}
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		member, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("find member: %w", err)
		}
		members = append(members, *member)
		seen[id] = true
	}

	group := &model.Group{
		Name:        name,
		Description: description,
		Members:     members,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}
