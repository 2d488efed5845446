package storage

import (
	"context"
	"path/filepath"
	"testing"

	"tweetsens/backend/internal/database"
	"tweetsens/backend/internal/models"
)

func newTestRepo(t *testing.T) TweetRepository {
	t.Helper()

	db, err := database.NewDB(database.NewConfig(filepath.Join(t.TempDir(), "tweets.db")))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRepository(db)
}

func sampleTweets() []models.Tweet {
	return []models.Tweet{
		{TweetID: "1", Username: "alice", Content: "loving the #golang release", Date: "2024-05-01T10:00:00Z", Sentiment: "positive", Likes: 10, Retweets: 2},
		{TweetID: "2", Username: "bob", Content: "meh day", Date: "2024-05-02T11:00:00Z", Sentiment: "neutral", Likes: 1, Retweets: 0},
		{TweetID: "3", Username: "alice", Content: "worst outage ever", Date: "2024-05-03T12:00:00Z", Sentiment: "negative", Likes: 5, Retweets: 7},
	}
}

func TestInsertBatchAndExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, sampleTweets()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	exists, err := repo.Exists(ctx, "2")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatalf("tweet 2 should exist")
	}

	exists, err = repo.Exists(ctx, "404")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatalf("tweet 404 should not exist")
	}
}

func TestUniqueConstraintSurfacesOnDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, sampleTweets()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	err := repo.InsertBatch(ctx, []models.Tweet{
		{TweetID: "1", Username: "mallory", Content: "dup", Date: "2024-05-04T00:00:00Z", Sentiment: "neutral"},
	})
	if err == nil {
		t.Fatalf("inserting a duplicate tweet_id must fail, the constraint is the safety net")
	}
}

func TestAllOrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, sampleTweets()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	tweets, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(tweets) != 3 {
		t.Fatalf("got %d tweets, want 3", len(tweets))
	}
	if tweets[0].TweetID != "3" || tweets[2].TweetID != "1" {
		t.Fatalf("tweets not ordered newest first: %v", tweets)
	}
}

func TestByUsernameCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, sampleTweets()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	tweets, err := repo.ByUsername(ctx, "Alice")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(tweets) != 2 {
		t.Fatalf("got %d tweets for 'Alice', want 2", len(tweets))
	}

	tweets, err = repo.ByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(tweets) != 0 {
		t.Fatalf("got %d tweets for unknown user, want 0", len(tweets))
	}
}

func TestByTweetID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, sampleTweets()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	tweet, err := repo.ByTweetID(ctx, "2")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if tweet == nil || tweet.Username != "bob" {
		t.Fatalf("got %+v, want bob's tweet", tweet)
	}

	tweet, err = repo.ByTweetID(ctx, "404")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if tweet != nil {
		t.Fatalf("got %+v for unknown id, want nil", tweet)
	}
}

func TestByHashtagSubstringMatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, sampleTweets()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	tweets, err := repo.ByHashtag(ctx, "golang")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(tweets) != 1 || tweets[0].TweetID != "1" {
		t.Fatalf("got %v, want only the #golang tweet", tweets)
	}

	// The literal '#tag' must be present; bare mention of the word is not
	// a match.
	tweets, err = repo.ByHashtag(ctx, "outage")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(tweets) != 0 {
		t.Fatalf("got %v, want no match without the '#' prefix", tweets)
	}
}
