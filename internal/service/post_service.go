package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commune/internal/cache"
	apperrors "commune/internal/errors"
	"commune/internal/model"
	"commune/internal/repository"
)

const (
	feedCacheKey = "posts:feed"
	feedCacheTTL = 30 * time.Second
)

// PostService handles post creation and retrieval.
type PostService interface {
	// Create stores a post authored by the verified caller. A non-nil
	// groupID scopes the post to that group and requires membership.
	Create(ctx context.Context, authorID uuid.UUID, content string, images []string, groupID *uuid.UUID) (*model.Post, error)
	// Feed returns the public feed with authors populated.
	Feed(ctx context.Context) ([]model.Post, error)
	// GroupPosts returns a group's posts with authors populated.
	GroupPosts(ctx context.Context, groupID uuid.UUID) ([]model.Post, error)
}

type postService struct {
	posts  repository.PostRepository
	groups repository.GroupRepository
	cache  *cache.Client
}

// NewPostService creates a post service.
func NewPostService(posts repository.PostRepository, groups repository.GroupRepository, cache *cache.Client) PostService {
	return &postService{posts: posts, groups: groups, cache: cache}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, content string, images []string, groupID *uuid.UUID) (*model.Post, error) {
	if groupID != nil {
		if err := s.requireMember(ctx, *groupID, authorID); err != nil {
			return nil, err
		}
	}

	post := &model.Post{
		AuthorID: authorID,
		Content:  content,
		Images:   images,
		GroupID:  groupID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if groupID == nil {
		_ = s.cache.Delete(ctx, feedCacheKey)
	}
	return post, nil
}

// requireMember gates group-scoped writes: the group must exist and the
// candidate must be in its member set. It performs no mutation.
func (s *postService) requireMember(ctx context.Context, groupID, userID uuid.UUID) error {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGroupNotFound
		}
		return fmt.Errorf("find group: %w", err)
	}
	if !group.HasMember(userID) {
		return apperrors.ErrNotGroupMember
	}
	return nil
}

func (s *postService) Feed(ctx context.Context) ([]model.Post, error) {
	if data, _ := s.cache.Get(ctx, feedCacheKey); data != nil {
		if posts, err := feedFromCache(data); err == nil {
			return posts, nil
		}
	}

	posts, err := s.posts.ListFeed(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := feedToCache(posts); err == nil {
		_ = s.cache.Set(ctx, feedCacheKey, payload, feedCacheTTL)
	}
	return posts, nil
}

func (s *postService) GroupPosts(ctx context.Context, groupID uuid.UUID) ([]model.Post, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return s.posts.ListByGroup(ctx, groupID)
}

// cachedPost carries a feed entry through the cache. The Author relation
// is excluded from the Post's own JSON, so it is stored alongside.
type cachedPost struct {
	Post   model.Post `json:"post"`
	Author model.User `json:"author"`
}

func feedToCache(posts []model.Post) ([]byte, error) {
	entries := make([]cachedPost, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, cachedPost{Post: p, Author: p.Author})
	}
	return json.Marshal(entries)
}

func feedFromCache(data []byte) ([]model.Post, error) {
	var entries []cachedPost
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	posts := make([]model.Post, 0, len(entries))
	for _, e := range entries {
		p := e.Post
		p.Author = e.Author
		posts = append(posts, p)
	}
	return posts, nil
}
