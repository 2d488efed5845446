package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"tweetsens/backend/internal/models"
)

// tweetsRequest is the body for both visualization endpoints: the caller
// supplies the batch of records to render.
type tweetsRequest struct {
	Tweets []models.Tweet `json:"tweets"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// VisualizeWordcloud renders a word cloud from the supplied tweets.
func (h *Handler) VisualizeWordcloud(w http.ResponseWriter, r *http.Request) {
	var req tweetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := h.renderer.Wordcloud(req.Tweets)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Wordcloud rendering failed")
		writeDetail(w, r, http.StatusInternalServerError, "Failed to generate word cloud")
		return
	}

	writeJSON(w, r, http.StatusOK, urlResponse{URL: url})
}

// VisualizeHeatmap renders a sentiment/hour engagement heatmap from the
// supplied tweets.
func (h *Handler) VisualizeHeatmap(w http.ResponseWriter, r *http.Request) {
	var req tweetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := h.renderer.Heatmap(req.Tweets)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Heatmap rendering failed")
		writeDetail(w, r, http.StatusInternalServerError, "Failed to generate heatmap")
		return
	}

	writeJSON(w, r, http.StatusOK, urlResponse{URL: url})
}
