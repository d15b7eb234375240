package advisor

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/katalvlaran/patrol/astar"
	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/zone"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps domain errors to HTTP statuses. Contract violations are the
// caller's fault and echo the error text; anything else is logged.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, zone.ErrUnknownZone):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, astar.ErrInvalidEndpoint),
		errors.Is(err, astar.ErrOptionViolation),
		errors.Is(err, grid.ErrInvalidGrid),
		errors.Is(err, zone.ErrRiskOutOfRange):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
