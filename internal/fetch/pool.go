// Package fetch implements the ingestion core: a bearer-token pool with
// linear rotation over credential failures, and the orchestrator that turns
// external candidates into committed, sentiment-tagged records.
package fetch

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"tweetsens/backend/internal/source"
)

// ErrAllTokensFailed is returned when every token in the pool was exhausted
// by rate-limit or auth rejections and no other error was recorded.
var ErrAllTokensFailed = errors.New("all bearer tokens failed")

// Work is one unit of work attempted against a token-scoped client. A nil
// return short-circuits the rotation, including for "no results" outcomes.
type Work func(ctx context.Context, client source.Client) error

// Pool holds the ordered bearer tokens and builds a fresh client per
// attempt. The token list is read-only after construction, so a Pool is safe
// to share across requests.
type Pool struct {
	tokens  []string
	factory source.ClientFactory
}

// NewPool creates a pool over tokens in the given order. Empty tokens are
// kept: a client built from one fails at call time, which is just another
// rotation step.
func NewPool(tokens []string, factory source.ClientFactory) *Pool {
	return &Pool{tokens: tokens, factory: factory}
}

// Do attempts work with each token in order until one attempt succeeds or
// the pool is exhausted.
//
// Rate-limit and auth rejections rotate silently. Any other error also
// rotates but is recorded, and the last recorded one is surfaced on
// exhaustion. source.ErrNotFound is the one exception and returns
// immediately; no token can make a missing post appear.
func (p *Pool) Do(ctx context.Context, work Work) error {
	var lastErr error

	for i, token := range p.tokens {
		client := p.factory(token)

		log.Info().Int("token", i+1).Msg("Trying bearer token")

		err := work(ctx, client)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, source.ErrRateLimited):
			log.Warn().Int("token", i+1).Msg("Token hit rate limit, trying next token")
		case errors.Is(err, source.ErrUnauthorized):
			log.Warn().Int("token", i+1).Msg("Token unauthorized, trying next token")
		case errors.Is(err, source.ErrNotFound):
			return err
		default:
			log.Error().Err(err).Int("token", i+1).Msg("Token attempt failed")
			lastErr = err
		}
	}

	if lastErr != nil {
		return lastErr
	}
	return ErrAllTokensFailed
}
