package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tweetsens/backend/internal/database"
	"tweetsens/backend/internal/models"
)

// TweetRepository defines operations for storing and querying tweets.
type TweetRepository interface {
	Exists(ctx context.Context, tweetID string) (bool, error)
	InsertBatch(ctx context.Context, tweets []models.Tweet) error
	All(ctx context.Context) ([]models.Tweet, error)
	ByUsername(ctx context.Context, username string) ([]models.Tweet, error)
	ByTweetID(ctx context.Context, tweetID string) (*models.Tweet, error)
	ByHashtag(ctx context.Context, tag string) ([]models.Tweet, error)
}

// sqlxRepository implements TweetRepository using sqlx.
type sqlxRepository struct {
	db *database.DB
}

// NewRepository creates a new repository instance.
func NewRepository(db *database.DB) TweetRepository {
	return &sqlxRepository{db: db}
}

const tweetColumns = `id, tweet_id, username, content, date, sentiment, likes, retweets`

// Exists reports whether a tweet with the given external id is stored.
func (r *sqlxRepository) Exists(ctx context.Context, tweetID string) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM tweets WHERE tweet_id = ? LIMIT 1`, tweetID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("existence query failed: %w", err)
	}
	return true, nil
}

// InsertBatch commits all tweets in one transaction. Inserts are plain, not
// upserts: the UNIQUE constraint on tweet_id is the safety net against
// concurrent fetches overlapping, and a violation must surface as a commit
// failure rather than being swallowed.
func (r *sqlxRepository) InsertBatch(ctx context.Context, tweets []models.Tweet) error {
	if len(tweets) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO tweets (tweet_id, username, content, date, sentiment, likes, retweets)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tweets {
		if _, err := stmt.ExecContext(ctx,
			t.TweetID, t.Username, t.Content, t.Date, t.Sentiment, t.Likes, t.Retweets,
		); err != nil {
			return fmt.Errorf("failed to insert tweet %s: %w", t.TweetID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// All returns every stored tweet, newest first.
func (r *sqlxRepository) All(ctx context.Context) ([]models.Tweet, error) {
	var tweets []models.Tweet
	query := `SELECT ` + tweetColumns + ` FROM tweets ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &tweets, query); err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return tweets, nil
}

// ByUsername matches case-insensitively. Usernames are lower-cased at write
// time, so lowering the parameter is sufficient.
func (r *sqlxRepository) ByUsername(ctx context.Context, username string) ([]models.Tweet, error) {
	var tweets []models.Tweet
	query := `SELECT ` + tweetColumns + ` FROM tweets WHERE username = lower(?) ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &tweets, query, username); err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return tweets, nil
}

// ByTweetID returns the stored tweet or nil when none matches.
func (r *sqlxRepository) ByTweetID(ctx context.Context, tweetID string) (*models.Tweet, error) {
	var tweet models.Tweet
	query := `SELECT ` + tweetColumns + ` FROM tweets WHERE tweet_id = ?`
	err := r.db.GetContext(ctx, &tweet, query, tweetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &tweet, nil
}

// ByHashtag matches the literal "#tag" as a substring of the content.
// SQLite's LIKE is case-insensitive for ASCII, so #Go and #go both match.
func (r *sqlxRepository) ByHashtag(ctx context.Context, tag string) ([]models.Tweet, error) {
	var tweets []models.Tweet
	query := `SELECT ` + tweetColumns + ` FROM tweets WHERE content LIKE '%' || ? || '%' ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &tweets, query, "#"+tag); err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return tweets, nil
}
