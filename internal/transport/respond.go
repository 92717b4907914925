package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	id := requestIDFrom(r.Context())
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.String("request_id", id), zap.Error(err))
	}
	if err != nil && status < http.StatusInternalServerError {
		msg = msg + ": " + err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg, RequestID: id})
}

// decodeJSON accepts an empty body and leaves dst at its zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// addressParam returns the lower-cased {address} path parameter or false when it is not
// a hex account address.
func addressParam(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "address")
	if !common.IsHexAddress(raw) {
		return "", false
	}
	return strings.ToLower(common.HexToAddress(raw).Hex()), true
}
