package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"tweetsens/backend/internal/source"
)

const fetchDisabledDetail = "Fetching from X API is disabled due to rate limits or quota. " +
	"Use only stored tweets for analysis."

// FetchByUsername ingests the latest tweets of one author.
func (h *Handler) FetchByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	if !h.fetchEnabled {
		writeDetail(w, r, http.StatusForbidden, fetchDisabledDetail)
		return
	}

	stored, err := h.fetcher.ByUsername(r.Context(), username)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("username", username).Msg("Fetch by username failed")
		writeDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hlog.FromRequest(r).Info().Str("username", username).Int("stored", stored).Msg("Fetch by username completed")
	writeJSON(w, r, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Tweets by @%s fetched and stored with sentiment.", username),
	})
}

// FetchByHashtag ingests recent tweets containing the hashtag.
func (h *Handler) FetchByHashtag(w http.ResponseWriter, r *http.Request) {
	hashtag := r.PathValue("hashtag")

	if !h.fetchEnabled {
		writeDetail(w, r, http.StatusForbidden, fetchDisabledDetail)
		return
	}

	stored, err := h.fetcher.ByHashtag(r.Context(), hashtag)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("hashtag", hashtag).Msg("Fetch by hashtag failed")
		writeDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hlog.FromRequest(r).Info().Str("hashtag", hashtag).Int("stored", stored).Msg("Fetch by hashtag completed")
	writeJSON(w, r, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Tweets with #%s fetched and stored with sentiment.", hashtag),
	})
}

// FetchByID ingests a single tweet. A missing tweet maps to 404, distinct
// from credential exhaustion and other failures.
func (h *Handler) FetchByID(w http.ResponseWriter, r *http.Request) {
	tweetID := r.PathValue("tweet_id")

	if !h.fetchEnabled {
		writeDetail(w, r, http.StatusForbidden, fetchDisabledDetail)
		return
	}

	_, err := h.fetcher.ByID(r.Context(), tweetID)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			writeDetail(w, r, http.StatusNotFound, "Tweet not found.")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Str("tweet_id", tweetID).Msg("Fetch by id failed")
		writeDetail(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hlog.FromRequest(r).Info().Str("tweet_id", tweetID).Msg("Fetch by id completed")
	writeJSON(w, r, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Tweet with ID %s fetched and stored with sentiment.", tweetID),
	})
}
