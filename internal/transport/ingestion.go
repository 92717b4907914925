package transport

import (
	"errors"
	"net/http"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/coordinator"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/ingester"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

type runRequest struct {
	Tier          string `json:"tier"`
	IndexLaunches bool   `json:"index_launches"`
	IndexSwaps    bool   `json:"index_swaps"`
}

// runIngestion is the entrypoint for external periodic invokers. Contention is not an
// error: a busy tier answers 200 with busy=true and the queue position.
func (h *Handler) runIngestion(w http.ResponseWriter, r *http.Request) {
	if h.deps.Ingester == nil {
		h.fail(w, r, http.StatusServiceUnavailable, "ingestion is disabled on this instance", nil)
		return
	}
	var body runRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.fail(w, r, http.StatusBadRequest, "invalid body", err)
		return
	}

	res, err := h.deps.Ingester.RunIngestion(r.Context(), ingester.Request{
		Tier:          model.Tier(body.Tier),
		IndexLaunches: body.IndexLaunches,
		IndexSwaps:    body.IndexSwaps,
	})
	switch {
	case errors.Is(err, model.ErrUnknownTier):
		h.fail(w, r, http.StatusBadRequest, "invalid tier", err)
	case err != nil && res.Fatal:
		writeJSON(w, http.StatusInternalServerError, res)
	case err != nil:
		h.fail(w, r, http.StatusBadGateway, "ingestion run failed", err)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func (h *Handler) backfill(w http.ResponseWriter, r *http.Request) {
	if h.deps.Ingester == nil {
		h.fail(w, r, http.StatusServiceUnavailable, "ingestion is disabled on this instance", nil)
		return
	}
	address, ok := addressParam(r)
	if !ok {
		h.fail(w, r, http.StatusBadRequest, "invalid token address", nil)
		return
	}

	res, err := h.deps.Ingester.Backfill(r.Context(), address)
	var busy *coordinator.BusyError
	switch {
	case errors.Is(err, model.ErrNotFound):
		h.fail(w, r, http.StatusNotFound, "unknown token", nil)
	case errors.As(err, &busy), errors.Is(err, coordinator.ErrTimedOut):
		h.fail(w, r, http.StatusConflict, "backfill already running", err)
	case err != nil:
		h.fail(w, r, http.StatusBadGateway, "backfill failed", err)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}
