package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.twitter.com"

	// Per-call bound so a dead endpoint costs at most this much per token
	// during rotation.
	defaultRequestTimeout = 15 * time.Second

	tweetFields = "created_at,author_id,public_metrics"
)

// HTTPClient talks to the X API v2 with a single bearer token.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient builds a client for one bearer token. An empty token is
// accepted; requests made with it fail with ErrUnauthorized at call time.
func NewHTTPClient(token string) *HTTPClient {
	return &HTTPClient{
		baseURL: defaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

// NewHTTPClientFactory returns a ClientFactory producing HTTPClients against
// baseURL. An empty baseURL means the production endpoint.
func NewHTTPClientFactory(baseURL string) ClientFactory {
	return func(token string) Client {
		c := NewHTTPClient(token)
		if baseURL != "" {
			c.baseURL = baseURL
		}
		return c
	}
}

type apiUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type apiTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		LikeCount    int `json:"like_count"`
		RetweetCount int `json:"retweet_count"`
	} `json:"public_metrics"`
}

func (c *HTTPClient) UserByUsername(ctx context.Context, username string) (*User, error) {
	var envelope struct {
		Data *apiUser `json:"data"`
	}
	path := "/2/users/by/username/" + url.PathEscape(username)
	if err := c.getJSON(ctx, path, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return &User{ID: envelope.Data.ID, Username: envelope.Data.Username}, nil
}

func (c *HTTPClient) UserByID(ctx context.Context, id string) (*User, error) {
	var envelope struct {
		Data *apiUser `json:"data"`
	}
	path := "/2/users/" + url.PathEscape(id)
	if err := c.getJSON(ctx, path, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("user id %q: %w", id, ErrNotFound)
	}
	return &User{ID: envelope.Data.ID, Username: envelope.Data.Username}, nil
}

func (c *HTTPClient) UserTweets(ctx context.Context, userID string, maxResults int) ([]Tweet, error) {
	var envelope struct {
		Data []apiTweet `json:"data"`
	}
	query := url.Values{
		"max_results":  {fmt.Sprint(maxResults)},
		"tweet.fields": {tweetFields},
	}
	path := "/2/users/" + url.PathEscape(userID) + "/tweets"
	if err := c.getJSON(ctx, path, query, &envelope); err != nil {
		return nil, err
	}
	return toTweets(envelope.Data), nil
}

func (c *HTTPClient) SearchRecent(ctx context.Context, query string, maxResults int) ([]Tweet, error) {
	var envelope struct {
		Data []apiTweet `json:"data"`
	}
	params := url.Values{
		"query":        {query},
		"max_results":  {fmt.Sprint(maxResults)},
		"tweet.fields": {tweetFields},
	}
	if err := c.getJSON(ctx, "/2/tweets/search/recent", params, &envelope); err != nil {
		return nil, err
	}
	return toTweets(envelope.Data), nil
}

func (c *HTTPClient) TweetByID(ctx context.Context, id string) (*Tweet, error) {
	var envelope struct {
		Data *apiTweet `json:"data"`
	}
	query := url.Values{"tweet.fields": {tweetFields}}
	path := "/2/tweets/" + url.PathEscape(id)
	if err := c.getJSON(ctx, path, query, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("tweet %q: %w", id, ErrNotFound)
	}
	tweet := toTweet(*envelope.Data)
	return &tweet, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", path, ErrRateLimited)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", path, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func toTweets(in []apiTweet) []Tweet {
	tweets := make([]Tweet, 0, len(in))
	for _, t := range in {
		tweets = append(tweets, toTweet(t))
	}
	return tweets
}

func toTweet(t apiTweet) Tweet {
	return Tweet{
		ID:        t.ID,
		AuthorID:  t.AuthorID,
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
		Likes:     t.PublicMetrics.LikeCount,
		Retweets:  t.PublicMetrics.RetweetCount,
	}
}
