package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

type acquireRequest struct {
	ResourceKey    string `json:"resource_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type ticketResponse struct {
	RequestID     string `json:"request_id"`
	Acquired      bool   `json:"acquired"`
	QueuePosition int    `json:"queue_position"`
}

type readinessResponse struct {
	Acquired      bool              `json:"acquired"`
	TimedOut      bool              `json:"timed_out"`
	QueuePosition int               `json:"queue_position"`
	Status        model.QueueStatus `json:"status"`
}

type renewRequest struct {
	ExtensionSeconds int `json:"extension_seconds"`
}

func (h *Handler) acquireLock(w http.ResponseWriter, r *http.Request) {
	var body acquireRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.fail(w, r, http.StatusBadRequest, "invalid body", err)
		return
	}
	if body.ResourceKey == "" {
		h.fail(w, r, http.StatusBadRequest, "resource_key is required", nil)
		return
	}
	timeout, ok := h.seconds(body.TimeoutSeconds, h.cfg.DefaultLockTimeout)
	if !ok {
		h.fail(w, r, http.StatusBadRequest, "timeout_seconds out of range", nil)
		return
	}

	ticket, err := h.deps.Locks.Acquire(r.Context(), body.ResourceKey, timeout)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "acquire failed", err)
		return
	}
	writeJSON(w, http.StatusOK, ticketResponse{
		RequestID:     ticket.RequestID,
		Acquired:      ticket.Acquired,
		QueuePosition: ticket.QueuePosition,
	})
}

func (h *Handler) lockStatus(w http.ResponseWriter, r *http.Request) {
	ready, err := h.deps.Locks.CheckReady(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		h.lockError(w, r, "check ready failed", err)
		return
	}
	writeJSON(w, http.StatusOK, readinessResponse{
		Acquired:      ready.Acquired,
		TimedOut:      ready.TimedOut,
		QueuePosition: ready.QueuePosition,
		Status:        ready.Status,
	})
}

func (h *Handler) renewLock(w http.ResponseWriter, r *http.Request) {
	var body renewRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.fail(w, r, http.StatusBadRequest, "invalid body", err)
		return
	}
	extension, ok := h.seconds(body.ExtensionSeconds, h.cfg.DefaultLockTimeout)
	if !ok {
		h.fail(w, r, http.StatusBadRequest, "extension_seconds out of range", nil)
		return
	}
	if err := h.deps.Locks.Renew(r.Context(), chi.URLParam(r, "requestID"), extension); err != nil {
		h.lockError(w, r, "renew failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) releaseLock(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Locks.Release(r.Context(), chi.URLParam(r, "requestID")); err != nil {
		h.lockError(w, r, "release failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// releaseResource force-clears a resource; an operator escape hatch for stuck holders.
func (h *Handler) releaseResource(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Locks.ReleaseResource(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.lockError(w, r, "release resource failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) lockError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, coordinator.ErrUnknownRequest):
		h.fail(w, r, http.StatusNotFound, "unknown request", nil)
	case errors.Is(err, coordinator.ErrNotHolder):
		h.fail(w, r, http.StatusConflict, "request does not hold the lock", nil)
	default:
		h.fail(w, r, http.StatusInternalServerError, msg, err)
	}
}

func (h *Handler) seconds(value int, fallback time.Duration) (time.Duration, bool) {
	if value == 0 {
		return fallback, true
	}
	d := time.Duration(value) * time.Second
	if value < 0 || d > h.cfg.MaxLockTimeout {
		return 0, false
	}
	return d, true
}
