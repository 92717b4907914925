package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/chart"
	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	address, ok := addressParam(r)
	if !ok {
		h.fail(w, r, http.StatusBadRequest, "invalid token address", nil)
		return
	}
	hours, err := intQuery(r, "hours", h.cfg.DefaultChartHours)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, "invalid hours", err)
		return
	}
	points, err := intQuery(r, "points", h.cfg.DefaultChartPoints)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, "invalid points", err)
		return
	}

	series, err := h.deps.Charts.Sample(r.Context(), address, hours, points)
	switch {
	case errors.Is(err, chart.ErrInvalidRequest):
		h.fail(w, r, http.StatusBadRequest, "invalid chart request", err)
	case errors.Is(err, model.ErrNotFound):
		h.fail(w, r, http.StatusNotFound, "unknown token", nil)
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, "chart query failed", err)
	default:
		writeJSON(w, http.StatusOK, series)
	}
}

func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
