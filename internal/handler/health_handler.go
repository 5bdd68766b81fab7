package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by the store and the cache client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports backend reachability.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Healthz answers 200 while the store responds to a ping.
func (h *HealthHandler) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		return c.String(http.StatusServiceUnavailable, "store unreachable")
	}
	return c.String(http.StatusOK, "ok")
}
