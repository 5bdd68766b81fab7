package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"eventboard/internal/auth"
	apperrors "eventboard/internal/errors"
	"eventboard/internal/service"
)

// EventHandler handles event endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest represents a new event.
type CreateEventRequest struct {
	Text string `json:"text" validate:"required,min=5,max=300"`
	Name string `json:"name" validate:"max=100"`
}

// Normalize trims text and name so length rules apply to the stored values.
func (r *CreateEventRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
	r.Name = strings.TrimSpace(r.Name)
}

// Test godoc
// @Summary Events route liveness
// @Tags events
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /events/test [get]
func (h *EventHandler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "Events route is working"})
}

// List godoc
// @Summary List events, newest first
// @Tags events
// @Produce json
// @Success 200 {array} model.Event
// @Failure 503 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get godoc
// @Summary Get event by id
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.eventService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Create godoc
// @Summary Create an event owned by the caller
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	id, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return apperrors.ErrNoToken
	}

	var req CreateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.eventService.Create(c.Request().Context(), id, service.CreateEventInput{
		Text: req.Text,
		Name: req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}
