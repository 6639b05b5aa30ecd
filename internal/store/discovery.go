package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DiscoveryResult is one cached company lookup hit.
type DiscoveryResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// DiscoveryCache caches company search results in Redis so repeated
// enrichment of the same company does not hit the external search API.
type DiscoveryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDiscoveryCache(client *redis.Client, ttl time.Duration) *DiscoveryCache {
	return &DiscoveryCache{client: client, ttl: ttl}
}

func discoveryKey(company, location string) string {
	return fmt.Sprintf("discovery:%s:%s",
		strings.ToLower(strings.TrimSpace(company)),
		strings.ToLower(strings.TrimSpace(location)))
}

// Get returns the cached results for a company, or (nil, false) on miss.
func (c *DiscoveryCache) Get(ctx context.Context, company, location string) ([]DiscoveryResult, bool, error) {
	data, err := c.client.Get(ctx, discoveryKey(company, location)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("discovery cache get: %w", err)
	}

	var results []DiscoveryResult
	if err := json.Unmarshal(data, &results); err != nil {
		// Corrupt entry behaves like a miss and gets overwritten.
		return nil, false, nil
	}
	return results, true, nil
}

func (c *DiscoveryCache) Set(ctx context.Context, company, location string, results []DiscoveryResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("discovery cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, discoveryKey(company, location), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("discovery cache set: %w", err)
	}
	return nil
}
