package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "commune/internal/errors"
	"commune/internal/service"
)

// GroupHandler handles group endpoints.
type GroupHandler struct {
	svc service.GroupService
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(svc service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// CreateGroupRequest represents a group creation request. The creator is
// always included in the member set, whatever Members lists.
type CreateGroupRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members,omitempty"`
}

// Create godoc
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group payload"
// @Success 201 {object} model.Group
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security ApiKeyAuth
// @Router /groups [post]
func (h *GroupHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	memberIDs := make([]uuid.UUID, 0, len(req.Members))
	for _, raw := range req.Members {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid member id")
		}
		memberIDs = append(memberIDs, id)
	}

	group, err := h.svc.Create(c.Request().Context(), caller, req.Name, req.Description, memberIDs)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, group)
}
