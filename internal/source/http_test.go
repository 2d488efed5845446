package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	factory := NewHTTPClientFactory(srv.URL)
	return factory("test-token").(*HTTPClient)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate_limited", http.StatusTooManyRequests, ErrRateLimited},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"not_found", http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.TweetByID(context.Background(), "42")
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTweetByIDParsesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"42","text":"gm","author_id":"7",
			"created_at":"2024-05-01T10:00:00Z",
			"public_metrics":{"like_count":3,"retweet_count":1}}}`))
	})

	tweet, err := client.TweetByID(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tweet.ID != "42" || tweet.AuthorID != "7" || tweet.Likes != 3 || tweet.Retweets != 1 {
		t.Fatalf("parsed tweet %+v", tweet)
	}
}

func TestTweetByIDMissingDataIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"title":"Not Found Error"}]}`))
	})

	_, err := client.TweetByID(context.Background(), "42")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for an empty data envelope", err)
	}
}

func TestSearchRecentEmptyData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "#golang" {
			t.Errorf("query param %q, want %q", got, "#golang")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta":{"result_count":0}}`))
	})

	tweets, err := client.SearchRecent(context.Background(), "#golang", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tweets) != 0 {
		t.Fatalf("got %d tweets, want 0", len(tweets))
	}
}
