package web

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/minsu-kang/steamrec/domain/game"
)

// RandomGame recommends a game for caller-supplied filters.
// Query params: tags (repeatable), review, korean_check, free_check.
func (h *Handler) RandomGame(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tags := q["tags"]
	if len(tags) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Status: http.StatusBadRequest,
			Error:  "at least one tag is required",
		})
		return
	}

	review := 0
	if s := q.Get("review"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{
				Status: http.StatusBadRequest,
				Error:  "review must be a non-negative integer",
			})
			return
		}
		review = n
	}

	query := game.Query{
		Tags:          tags,
		MinReviews:    review,
		LocalizedOnly: q.Get("korean_check") == "true",
	}
	if s := q.Get("free_check"); s != "" {
		free := s == "true"
		query.FreeOnly = &free
	}

	chosen, err := h.recommender.Direct(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chosen)
}

// InputGame recommends a game from free-text input.
func (h *Handler) InputGame(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Status: http.StatusBadRequest,
			Error:  "invalid request body",
		})
		return
	}

	rec, err := h.recommender.ByText(r.Context(), body.Input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ProfileGame recommends a game from a player's owned library.
func (h *Handler) ProfileGame(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.profileID(w, r)
	if !ok {
		return
	}

	rec, err := h.recommender.ByProfile(r.Context(), profileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// RecentPlayGame recommends a game from recently-played history.
func (h *Handler) RecentPlayGame(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.profileID(w, r)
	if !ok {
		return
	}

	rec, err := h.recommender.ByRecentPlay(r.Context(), profileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// TagList returns the public tag listing.
func (h *Handler) TagList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.recommender.Tags(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *Handler) profileID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		SteamID string `json:"steamId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SteamID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Status: http.StatusBadRequest,
			Error:  "steamId is required",
		})
		return "", false
	}
	return body.SteamID, true
}
