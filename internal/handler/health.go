package handler

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync/atomic"
	"time"
)

var errNotReady = stderrors.New("service is not ready")

// Health serves liveness and readiness. Readiness flips on once startup is
// complete and additionally requires the storage check to pass.
type Health struct {
	ready atomic.Bool
	check func(ctx context.Context) error
}

// NewHealth creates a Health. check may be nil when storage is in memory.
func NewHealth(check func(ctx context.Context) error) *Health {
	return &Health{check: check}
}

// SetReady marks the service ready or draining.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Ready reports whether the service accepts traffic.
func (h *Health) Ready(ctx context.Context) error {
	if !h.ready.Load() {
		return errNotReady
	}
	if h.check == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.check(ctx)
}

// Live handles GET /health.
func (h *Health) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Readyz handles GET /readyz.
func (h *Health) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.Ready(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
