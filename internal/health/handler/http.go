// Package handler exposes liveness/readiness over HTTP.
package handler

import (
	"context"
	"net/http"

	"orgsphere/backend/internal/server/respond"
)

// Pinger checks reachability of the backing database (e.g. *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves GET /health.
type Handler struct {
	pinger Pinger
}

// NewHandler returns a health handler. pinger may be nil, in which case the
// database check is skipped.
func NewHandler(pinger Pinger) *Handler {
	return &Handler{pinger: pinger}
}

// Health reports liveness and database readiness. The process is alive if
// this handler runs at all; the database field distinguishes degraded boots.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	database := "skipped"
	status := http.StatusOK
	if h.pinger != nil {
		if err := h.pinger.PingContext(r.Context()); err != nil {
			database = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			database = "ok"
		}
	}
	respond.JSON(w, status, map[string]string{
		"status":   "alive",
		"database": database,
	})
}
