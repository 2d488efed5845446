package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

// GetTweets returns every stored tweet, newest first.
func (h *Handler) GetTweets(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.repo.All(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error fetching tweets from repository")
		writeDetail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(tweets) == 0 {
		writeDetail(w, r, http.StatusNotFound, "No tweets found in the database.")
		return
	}
	writeJSON(w, r, http.StatusOK, tweets)
}

// GetTweetsByUsername matches the stored (lower-cased) username
// case-insensitively.
func (h *Handler) GetTweetsByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	tweets, err := h.repo.ByUsername(r.Context(), username)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("username", username).Msg("Error fetching tweets from repository")
		writeDetail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(tweets) == 0 {
		writeDetail(w, r, http.StatusNotFound, fmt.Sprintf("No tweets found for username '%s'.", username))
		return
	}
	writeJSON(w, r, http.StatusOK, tweets)
}

// GetTweetByID returns a single stored tweet.
func (h *Handler) GetTweetByID(w http.ResponseWriter, r *http.Request) {
	tweetID := r.PathValue("tweet_id")

	tweet, err := h.repo.ByTweetID(r.Context(), tweetID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("tweet_id", tweetID).Msg("Error fetching tweet from repository")
		writeDetail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if tweet == nil {
		writeDetail(w, r, http.StatusNotFound, fmt.Sprintf("Tweet ID '%s' not found.", tweetID))
		return
	}
	writeJSON(w, r, http.StatusOK, tweet)
}

// GetTweetsByHashtag substring-matches the literal "#tag" in tweet contents.
func (h *Handler) GetTweetsByHashtag(w http.ResponseWriter, r *http.Request) {
	hashtag := r.PathValue("hashtag")

	tweets, err := h.repo.ByHashtag(r.Context(), hashtag)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("hashtag", hashtag).Msg("Error fetching tweets from repository")
		writeDetail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(tweets) == 0 {
		writeDetail(w, r, http.StatusNotFound, fmt.Sprintf("No tweets found with hashtag '%s'.", hashtag))
		return
	}
	writeJSON(w, r, http.StatusOK, tweets)
}
