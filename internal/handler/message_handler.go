package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "commune/internal/errors"
	"commune/internal/service"
)

// MessageHandler handles direct message endpoints.
type MessageHandler struct {
	svc service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// SendMessageRequest represents a message send request. The sender always
// comes from the verified token identity, never from the body.
type SendMessageRequest struct {
	Receiver string `json:"receiver" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// Send godoc
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message payload"
// @Success 201 {object} model.Message
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security ApiKeyAuth
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	receiverID, err := uuid.Parse(req.Receiver)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid receiver id")
	}

	message, err := h.svc.Send(c.Request().Context(), caller, receiverID, req.Content)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, message)
}

// List godoc
// @Summary List the caller's sent and received messages
// @Tags messages
// @Produce json
// @Success 200 {array} model.Message
// @Security ApiKeyAuth
// @Router /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	messages, err := h.svc.ListForUser(c.Request().Context(), caller)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, messages)
}
