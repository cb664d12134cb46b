// Package cache publishes lobby roster snapshots to Redis so external
// tooling can query presence without touching the game server. Methods are
// nil-safe; the server runs without a cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// rosterTTL bounds how long a stale roster outlives its lobby.
const rosterTTL = 24 * time.Hour

// Cache wraps a Redis client.
type Cache struct {
	rdb *redis.Client
}

// New connects to the Redis instance at addr and verifies connectivity.
func New(ctx context.Context, addr string) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return &Cache{rdb: rdb}, nil
}

func rosterKey(code string) string { return "literature:lobby:" + code }

// StoreLobbyRoster writes the roster snapshot for a lobby code.
func (c *Cache) StoreLobbyRoster(ctx context.Context, code string, roster any) error {
	if c == nil {
		return nil
	}
	blob, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}
	if err := c.rdb.Set(ctx, rosterKey(code), blob, rosterTTL).Err(); err != nil {
		return fmt.Errorf("writing roster: %w", err)
	}
	return nil
}

// DeleteLobbyRoster removes the snapshot for a closed lobby.
func (c *Cache) DeleteLobbyRoster(ctx context.Context, code string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, rosterKey(code)).Err()
}

// Close releases the client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
