package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/c360studio/semshape/federate"
	"github.com/c360studio/semshape/namespace"
	"github.com/c360studio/semshape/query"
	"github.com/c360studio/semshape/shape"
	"github.com/c360studio/semshape/store"
)

// errorResponse is the JSON body for every error status.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing useful left to do.
		_ = err
	}
}

// writeError maps the error taxonomy to status codes: unresolved paths to
// 404, shape conflicts to 422, malformed queries to 400, federation
// failures to 502.
func writeError(w http.ResponseWriter, err error) {
	var (
		notFound *namespace.NotFoundError
		conflict *shape.ConflictError
		queryErr *query.Error
		fedErr   *federate.Error
	)

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
	case errors.As(err, &conflict):
		resp := errorResponse{Error: "conflicting shape constraints for " + conflict.Class}
		for _, rec := range conflict.Records {
			resp.Details = append(resp.Details,
				fmt.Sprintf("%s (declared by %s)", rec.Path, strings.Join(rec.Shapes(), ", ")))
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.As(err, &queryErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: queryErr.Error()})
	case errors.As(err, &fedErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: fedErr.Error()})
	case errors.Is(err, store.ErrNoSnapshot):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
