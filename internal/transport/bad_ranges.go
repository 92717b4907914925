package transport

import (
	"net/http"
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

type badRangeResponse struct {
	Scope     string          `json:"scope"`
	Kind      model.EventKind `json:"kind"`
	FromBlock uint64          `json:"from_block"`
	ToBlock   uint64          `json:"to_block"`
	Reason    string          `json:"reason"`
	Attempts  int             `json:"attempts"`
	Skipped   bool            `json:"skipped"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (h *Handler) badRanges(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 100)
	if err != nil || limit <= 0 || limit > 1000 {
		h.fail(w, r, http.StatusBadRequest, "limit must be between 1 and 1000", nil)
		return
	}
	skippedOnly := r.URL.Query().Get("skipped") == "true"

	ranges, err := h.deps.BadRanges.BadRanges(r.Context(), skippedOnly, limit)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "list bad ranges failed", err)
		return
	}
	out := make([]badRangeResponse, 0, len(ranges))
	for _, br := range ranges {
		out = append(out, badRangeResponse{
			Scope:     br.Scope,
			Kind:      br.Kind,
			FromBlock: br.FromBlock,
			ToBlock:   br.ToBlock,
			Reason:    br.Reason,
			Attempts:  br.Attempts,
			Skipped:   br.Skipped,
			UpdatedAt: br.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
