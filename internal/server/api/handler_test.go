package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tweetsens/backend/internal/models"
	"tweetsens/backend/internal/source"
)

// stubRepo serves canned query results.
type stubRepo struct {
	tweets []models.Tweet
	err    error
}

func (s *stubRepo) Exists(ctx context.Context, tweetID string) (bool, error) { return false, nil }
func (s *stubRepo) InsertBatch(ctx context.Context, tweets []models.Tweet) error {
	return nil
}
func (s *stubRepo) All(ctx context.Context) ([]models.Tweet, error) { return s.tweets, s.err }
func (s *stubRepo) ByUsername(ctx context.Context, username string) ([]models.Tweet, error) {
	return s.tweets, s.err
}
func (s *stubRepo) ByTweetID(ctx context.Context, tweetID string) (*models.Tweet, error) {
	if len(s.tweets) == 0 {
		return nil, s.err
	}
	return &s.tweets[0], s.err
}
func (s *stubRepo) ByHashtag(ctx context.Context, tag string) ([]models.Tweet, error) {
	return s.tweets, s.err
}

// stubFetcher counts invocations and returns a scripted result.
type stubFetcher struct {
	calls  int
	stored int
	err    error
}

func (s *stubFetcher) ByUsername(ctx context.Context, username string) (int, error) {
	s.calls++
	return s.stored, s.err
}
func (s *stubFetcher) ByHashtag(ctx context.Context, tag string) (int, error) {
	s.calls++
	return s.stored, s.err
}
func (s *stubFetcher) ByID(ctx context.Context, tweetID string) (int, error) {
	s.calls++
	return s.stored, s.err
}

func doRequest(h http.HandlerFunc, method, target string, pathValues map[string]string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, nil)
	for k, v := range pathValues {
		r.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestFetchDisabledTakesPrecedence(t *testing.T) {
	fetcher := &stubFetcher{}
	h := NewHandler(&stubRepo{}, fetcher, nil, false)

	endpoints := []struct {
		name    string
		handler http.HandlerFunc
		target  string
		values  map[string]string
	}{
		{"username", h.FetchByUsername, "/fetch/username/jack", map[string]string{"username": "jack"}},
		{"hashtag", h.FetchByHashtag, "/fetch/hashtag/go", map[string]string{"hashtag": "go"}},
		{"id", h.FetchByID, "/fetch/id/42", map[string]string{"tweet_id": "42"}},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			w := doRequest(ep.handler, http.MethodPost, ep.target, ep.values)
			if w.Code != http.StatusForbidden {
				t.Fatalf("status %d, want 403", w.Code)
			}
			var body struct {
				Detail string `json:"detail"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if body.Detail != fetchDisabledDetail {
				t.Fatalf("detail %q, want the fixed disabled message", body.Detail)
			}
		})
	}

	if fetcher.calls != 0 {
		t.Fatalf("fetcher invoked %d times with fetching disabled, want 0", fetcher.calls)
	}
}

func TestFetchByIDNotFoundMapsTo404(t *testing.T) {
	fetcher := &stubFetcher{err: fmt.Errorf("tweet 42: %w", source.ErrNotFound)}
	h := NewHandler(&stubRepo{}, fetcher, nil, true)

	w := doRequest(h.FetchByID, http.MethodPost, "/fetch/id/42", map[string]string{"tweet_id": "42"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestFetchFailureMapsTo400(t *testing.T) {
	fetcher := &stubFetcher{err: fmt.Errorf("boom")}
	h := NewHandler(&stubRepo{}, fetcher, nil, true)

	w := doRequest(h.FetchByUsername, http.MethodPost, "/fetch/username/jack", map[string]string{"username": "jack"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestFetchSuccessMessage(t *testing.T) {
	fetcher := &stubFetcher{stored: 3}
	h := NewHandler(&stubRepo{}, fetcher, nil, true)

	w := doRequest(h.FetchByHashtag, http.MethodPost, "/fetch/hashtag/go", map[string]string{"hashtag": "go"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Message == "" {
		t.Fatalf("expected a non-empty message")
	}
}

func TestGetTweetsEmpty404(t *testing.T) {
	h := NewHandler(&stubRepo{}, &stubFetcher{}, nil, true)

	w := doRequest(h.GetTweets, http.MethodGet, "/tweets", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404 when nothing is stored", w.Code)
	}
}

func TestGetTweetsReturnsWireRecords(t *testing.T) {
	repo := &stubRepo{tweets: []models.Tweet{
		{ID: 9, TweetID: "1", Username: "alice", Content: "gm", Date: "2024-05-01T10:00:00Z", Sentiment: "positive", Likes: 1, Retweets: 2},
	}}
	h := NewHandler(repo, &stubFetcher{}, nil, true)

	w := doRequest(h.GetTweets, http.MethodGet, "/tweets", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}

	var records []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	// The surrogate key stays internal; the wire record carries exactly
	// the public fields.
	record := records[0]
	if _, ok := record["id"]; ok {
		t.Fatalf("surrogate id leaked into the wire record: %v", record)
	}
	for _, field := range []string{"username", "tweet_id", "content", "date", "sentiment", "likes", "retweets"} {
		if _, ok := record[field]; !ok {
			t.Fatalf("wire record missing %q: %v", field, record)
		}
	}
}

func TestGetTweetByIDMissing404(t *testing.T) {
	h := NewHandler(&stubRepo{}, &stubFetcher{}, nil, true)

	w := doRequest(h.GetTweetByID, http.MethodGet, "/tweets/id/404", map[string]string{"tweet_id": "404"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}
