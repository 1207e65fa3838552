package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/arena-go-api/internal/dto"
)

// ResultsCache keeps computed debate results in Redis for a short TTL.
// A nil cache, or one built without a Redis client, is a no-op.
type ResultsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewResultsCache constructs a results cache.
func NewResultsCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ResultsCache {
	return &ResultsCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "results_cache").Logger(),
	}
}

func resultsCacheKey(debateID uint) string {
	return fmt.Sprintf("arena:results:%d", debateID)
}

// Get returns the cached results for a debate, if present.
func (c *ResultsCache) Get(ctx context.Context, debateID uint) (dto.DebateResultsResponse, bool) {
	if c == nil || c.client == nil {
		return dto.DebateResultsResponse{}, false
	}

	cached, err := c.client.Get(ctx, resultsCacheKey(debateID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Uint("debate_id", debateID).Msg("failed to read results cache")
		}
		return dto.DebateResultsResponse{}, false
	}

	var response dto.DebateResultsResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return dto.DebateResultsResponse{}, false
	}
	return response, true
}

// Set stores the results for a debate.
func (c *ResultsCache) Set(ctx context.Context, debateID uint, response dto.DebateResultsResponse) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, resultsCacheKey(debateID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Uint("debate_id", debateID).Msg("failed to store results cache")
	}
}

// Invalidate drops the cached results for a debate, typically after a new
// evaluation lands.
func (c *ResultsCache) Invalidate(ctx context.Context, debateID uint) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, resultsCacheKey(debateID)).Err(); err != nil {
		c.logger.Warn().Err(err).Uint("debate_id", debateID).Msg("failed to invalidate results cache")
	}
}
