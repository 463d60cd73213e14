package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commune/internal/model"
)

// GroupRepository defines group persistence operations.
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	// FindByID loads a group together with its member set.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Group, error)
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository builds a GORM-backed group repository.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create persists the group, then attaches its member set through the
// join table. Members must reference existing users; they are linked,
// never inserted.
func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	members := group.Members
	group.Members = nil
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return err
	}
	if len(members) > 0 {
		if err := r.db.WithContext(ctx).Model(group).Association("Members").Append(&members); err != nil {
			return err
		}
	}
	group.Members = members
	return nil
}

func (r *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}
