package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "commune/internal/errors"
	"commune/internal/model"
	"commune/internal/service"
)

// PostHandler handles feed and group post endpoints.
type PostHandler struct {
	svc service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePostRequest represents a post creation request. The author always
// comes from the verified token identity, never from the body.
type CreatePostRequest struct {
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"images,omitempty"`
	Group   string   `json:"group,omitempty"`
}

// AuthorResponse is the public projection of a post's author.
type AuthorResponse struct {
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// PostResponse is a post with its author populated.
type PostResponse struct {
	ID        uuid.UUID      `json:"id"`
	Author    AuthorResponse `json:"author"`
	Content   string         `json:"content"`
	Images    []string       `json:"images,omitempty"`
	GroupID   *uuid.UUID     `json:"group,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func toPostResponse(p model.Post) PostResponse {
	return PostResponse{
		ID: p.ID,
		Author: AuthorResponse{
			Username:   p.Author.Username,
			ProfilePic: p.Author.ProfilePic,
		},
		Content:   p.Content,
		Images:    p.Images,
		GroupID:   p.GroupID,
		CreatedAt: p.CreatedAt,
	}
}

func toPostResponses(posts []model.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

// Create godoc
// @Summary Create a post on the public feed or in a group
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post payload"
// @Success 201 {object} model.Post
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security ApiKeyAuth
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var groupID *uuid.UUID
	if req.Group != "" {
		id, err := uuid.Parse(req.Group)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid group id")
		}
		groupID = &id
	}

	post, err := h.svc.Create(c.Request().Context(), caller, req.Content, req.Images, groupID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// Feed godoc
// @Summary List the public feed
// @Tags posts
// @Produce json
// @Success 200 {array} PostResponse
// @Router /posts [get]
func (h *PostHandler) Feed(c echo.Context) error {
	posts, err := h.svc.Feed(c.Request().Context())
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// CreateInGroup godoc
// @Summary Create a post inside a group
// @Tags groups
// @Accept json
// @Produce json
// @Param groupId path string true "Group ID"
// @Param request body CreatePostRequest true "Post payload"
// @Success 201 {object} model.Post
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security ApiKeyAuth
// @Router /groups/{groupId}/posts [post]
func (h *PostHandler) CreateInGroup(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid group id")
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.svc.Create(c.Request().Context(), caller, req.Content, req.Images, &groupID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListInGroup godoc
// @Summary List a group's posts
// @Tags groups
// @Produce json
// @Param groupId path string true "Group ID"
// @Success 200 {array} PostResponse
// @Failure 404 {object} map[string]string
// @Router /groups/{groupId}/posts [get]
func (h *PostHandler) ListInGroup(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid group id")
	}

	posts, err := h.svc.GroupPosts(c.Request().Context(), groupID)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}
