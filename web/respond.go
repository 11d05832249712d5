package web

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/minsu-kang/steamrec/app"
)

type errorBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the app error taxonomy onto status codes. Anything
// outside the taxonomy is normalized to a generic 500 so callers never see
// an unstructured failure.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var msg string

	switch {
	case errors.Is(err, app.ErrInputTooShort):
		status, msg = http.StatusBadRequest, "input text is too short"
	case errors.Is(err, app.ErrNoMatch):
		status, msg = http.StatusNotFound, "no game matches the given filters"
	case errors.Is(err, app.ErrAllRecentlyRecommended):
		status, msg = http.StatusNotFound, "all matching games were recommended recently, try again later"
	case app.IsUpstream(err):
		status, msg = http.StatusBadGateway, "upstream service unavailable"
	case errors.Is(err, r.Context().Err()) && r.Context().Err() != nil:
		// Client went away; nothing useful to write.
		return
	default:
		status, msg = http.StatusInternalServerError, "internal error"
	}

	if status >= http.StatusInternalServerError {
		requestID, _ := r.Context().Value(requestIDKey).(string)
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Status: status, Error: msg})
}
