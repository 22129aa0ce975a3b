// Package cache stores the latest ticket analysis per ticket in Redis so
// downstream tooling can read results without re-running the pipeline.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/alphora/alphora/internal/agent"
	"github.com/alphora/alphora/internal/config"
)

// ErrCacheMiss is returned when no analysis is cached for a ticket.
var ErrCacheMiss = errors.New("analysis not cached")

// AnalysisCache is a redis-backed cache of TicketAnalysis keyed by ticket
// id.
type AnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnalysisCache(cfg config.RedisConfig) *AnalysisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return &AnalysisCache{
		client: client,
		ttl:    cfg.TTL,
	}
}

func analysisKey(ticketID string) string {
	return "alphora:analysis:" + ticketID
}

// StoreAnalysis writes the analysis with the configured TTL.
func (c *AnalysisCache) StoreAnalysis(ctx context.Context, analysis *agent.TicketAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %v", err)
	}
	return c.client.Set(ctx, analysisKey(analysis.TicketID), data, c.ttl).Err()
}

// GetAnalysis reads the cached analysis for a ticket.
func (c *AnalysisCache) GetAnalysis(ctx context.Context, ticketID string) (*agent.TicketAnalysis, error) {
	data, err := c.client.Get(ctx, analysisKey(ticketID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var analysis agent.TicketAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached analysis: %v", err)
	}
	return &analysis, nil
}

// Close releases the redis connection.
func (c *AnalysisCache) Close() error {
	return c.client.Close()
}
