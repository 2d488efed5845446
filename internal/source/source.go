// Package source abstracts the external social-media API the fetch pipeline
// reads from. A Client is scoped to a single bearer token; the fetch package
// builds one per rotation attempt via a ClientFactory.
package source

import (
	"context"
	"errors"
)

// Credential-scoped failures. Both trigger token rotation in the caller.
var (
	ErrRateLimited  = errors.New("rate limited")
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrNotFound is semantic, not credential-scoped: the requested post does
// not exist and trying further tokens cannot change that.
var ErrNotFound = errors.New("not found")

// Tweet is a candidate post as returned by the external API, not yet checked
// against the store.
type Tweet struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt string
	Likes     int
	Retweets  int
}

// User identifies a post author.
type User struct {
	ID       string
	Username string
}

// Client is a token-scoped view of the external API.
type Client interface {
	UserByUsername(ctx context.Context, username string) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)
	UserTweets(ctx context.Context, userID string, maxResults int) ([]Tweet, error)
	SearchRecent(ctx context.Context, query string, maxResults int) ([]Tweet, error)
	TweetByID(ctx context.Context, id string) (*Tweet, error)
}

// ClientFactory builds a Client for one bearer token. Building a client from
// an empty token must succeed; such a client fails at call time instead.
type ClientFactory func(token string) Client
