package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commune/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// ListFeed returns public posts (no group) with authors, newest first.
	ListFeed(ctx context.Context) ([]model.Post, error)
	// ListByGroup returns a group's posts with authors, newest first.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) ListFeed(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("group_id IS NULL").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
