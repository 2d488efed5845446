package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"tweetsens/backend/internal/server/storage"
	"tweetsens/backend/internal/visualize"
)

// Fetcher runs one ingestion per call and reports how many records were
// newly stored. Satisfied by fetch.Orchestrator.
type Fetcher interface {
	ByUsername(ctx context.Context, username string) (int, error)
	ByHashtag(ctx context.Context, tag string) (int, error)
	ByID(ctx context.Context, tweetID string) (int, error)
}

// Handler holds dependencies for all API endpoints.
type Handler struct {
	repo         storage.TweetRepository
	fetcher      Fetcher
	renderer     *visualize.Renderer
	fetchEnabled bool
}

// NewHandler creates a new handler instance. fetchEnabled gates the three
// fetch endpoints; when false they return a fixed 403 before anything else
// runs.
func NewHandler(repo storage.TweetRepository, fetcher Fetcher, renderer *visualize.Renderer, fetchEnabled bool) *Handler {
	return &Handler{
		repo:         repo,
		fetcher:      fetcher,
		renderer:     renderer,
		fetchEnabled: fetchEnabled,
	}
}

// detailResponse is the error body shape: a single textual detail message.
// Outcome branching is done on status codes, not by parsing this text.
type detailResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error marshaling JSON response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error writing JSON response body to client")
	}
}

func writeDetail(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, detailResponse{Detail: detail})
}
