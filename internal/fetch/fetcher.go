package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"tweetsens/backend/internal/models"
	"tweetsens/backend/internal/sentiment"
	"tweetsens/backend/internal/source"
)

// Store is the persistence capability the orchestrator needs: a per-item
// existence check and an atomic batch commit. The tweet_id uniqueness
// constraint lives in the store itself as a safety net; the orchestrator's
// check only avoids predictable constraint failures.
type Store interface {
	Exists(ctx context.Context, tweetID string) (bool, error)
	InsertBatch(ctx context.Context, tweets []models.Tweet) error
}

// Orchestrator runs the fetch pipeline: retrieve candidates through the
// token pool, dedup each against the store, classify, and commit the staged
// batch in one transaction. Processing is strictly sequential per request.
type Orchestrator struct {
	pool       *Pool
	store      Store
	classifier sentiment.Classifier
	maxResults int
}

// NewOrchestrator wires the pipeline. maxResults caps the page size for
// username and hashtag retrievals.
func NewOrchestrator(pool *Pool, store Store, classifier sentiment.Classifier, maxResults int) *Orchestrator {
	return &Orchestrator{
		pool:       pool,
		store:      store,
		classifier: classifier,
		maxResults: maxResults,
	}
}

// candidate is a post returned by the external API, not yet checked against
// the store. username is set when the retrieval already knows the display
// name; otherwise authorID is resolved per item.
type candidate struct {
	id        string
	username  string
	authorID  string
	text      string
	createdAt string
	likes     int
	retweets  int
}

type retrieval func(ctx context.Context, client source.Client) ([]candidate, error)

// ByUsername ingests the latest posts of one author. Zero candidates is a
// successful no-op. Returns the number of newly stored records.
func (o *Orchestrator) ByUsername(ctx context.Context, username string) (int, error) {
	return o.run(ctx, func(ctx context.Context, client source.Client) ([]candidate, error) {
		user, err := client.UserByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		tweets, err := client.UserTweets(ctx, user.ID, o.maxResults)
		if err != nil {
			return nil, err
		}
		candidates := make([]candidate, 0, len(tweets))
		for _, t := range tweets {
			c := toCandidate(t)
			c.username = username
			candidates = append(candidates, c)
		}
		return candidates, nil
	})
}

// ByHashtag ingests recent posts containing #tag. Author names are resolved
// per item with a fallback to the raw author id.
func (o *Orchestrator) ByHashtag(ctx context.Context, tag string) (int, error) {
	return o.run(ctx, func(ctx context.Context, client source.Client) ([]candidate, error) {
		tweets, err := client.SearchRecent(ctx, "#"+tag, o.maxResults)
		if err != nil {
			return nil, err
		}
		candidates := make([]candidate, 0, len(tweets))
		for _, t := range tweets {
			candidates = append(candidates, toCandidate(t))
		}
		return candidates, nil
	})
}

// ByID ingests a single post. A missing post surfaces as source.ErrNotFound,
// distinct from credential exhaustion.
func (o *Orchestrator) ByID(ctx context.Context, tweetID string) (int, error) {
	return o.run(ctx, func(ctx context.Context, client source.Client) ([]candidate, error) {
		tweet, err := client.TweetByID(ctx, tweetID)
		if err != nil {
			return nil, err
		}
		return []candidate{toCandidate(*tweet)}, nil
	})
}

// run executes one fetch invocation through the token pool. Everything after
// retrieval is per-attempt state: a retry on the next token restarts with an
// empty batch, so a half-staged batch from a failed attempt is discarded,
// never committed.
func (o *Orchestrator) run(ctx context.Context, retrieve retrieval) (int, error) {
	var stored int

	err := o.pool.Do(ctx, func(ctx context.Context, client source.Client) error {
		stored = 0

		candidates, err := retrieve(ctx, client)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			log.Info().Msg("No tweets found")
			return nil
		}

		batch := make([]models.Tweet, 0, len(candidates))
		// Staged ids for the current batch; the store check alone cannot
		// see them until commit.
		seen := make(map[string]struct{}, len(candidates))

		for _, c := range candidates {
			if _, staged := seen[c.id]; staged {
				log.Debug().Str("tweet_id", c.id).Msg("Duplicate within batch, skipping")
				continue
			}

			exists, err := o.store.Exists(ctx, c.id)
			if err != nil {
				return fmt.Errorf("existence check for tweet %s: %w", c.id, err)
			}
			if exists {
				log.Info().Str("tweet_id", c.id).Msg("Tweet already stored, skipping")
				continue
			}

			username := c.username
			if username == "" {
				username = o.resolveUsername(ctx, client, c.authorID)
			}

			label, err := o.classifier.Classify(c.text)
			if err != nil {
				return fmt.Errorf("classify tweet %s: %w", c.id, err)
			}

			batch = append(batch, models.Tweet{
				TweetID:   c.id,
				Username:  strings.ToLower(username),
				Content:   c.text,
				Date:      c.createdAt,
				Sentiment: label,
				Likes:     c.likes,
				Retweets:  c.retweets,
			})
			seen[c.id] = struct{}{}
		}

		if len(batch) == 0 {
			return nil
		}

		if err := o.store.InsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}

		stored = len(batch)
		log.Info().Int("stored", stored).Msg("Batch committed")
		return nil
	})

	if err != nil {
		return 0, err
	}
	return stored, nil
}

// resolveUsername looks up the display name for an author id. Resolution
// failure never aborts the item; the raw id stands in for the name.
func (o *Orchestrator) resolveUsername(ctx context.Context, client source.Client, authorID string) string {
	user, err := client.UserByID(ctx, authorID)
	if err != nil {
		log.Warn().Err(err).Str("author_id", authorID).Msg("Author lookup failed, using raw id")
		return authorID
	}
	return user.Username
}

func toCandidate(t source.Tweet) candidate {
	return candidate{
		id:        t.ID,
		authorID:  t.AuthorID,
		text:      t.Text,
		createdAt: t.CreatedAt,
		likes:     t.Likes,
		retweets:  t.Retweets,
	}
}
