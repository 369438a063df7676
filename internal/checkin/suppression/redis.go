package suppression

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares the window across stations. Selecting it widens the race
// window the suppression check closes from one process to the deployment;
// the persisted flag remains the authoritative duplicate defense either
// way, so Redis unavailability degrades to the process-local guarantee
// rather than blocking check-ins.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (s *Redis) key(key Key) string {
	return "gatepass:suppress:" + key.String()
}

func (s *Redis) Seen(ctx context.Context, key Key, _ time.Time) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("suppression check: %w", err)
	}
	return n > 0, nil
}

func (s *Redis) Mark(ctx context.Context, key Key, _ time.Time) error {
	if err := s.client.Set(ctx, s.key(key), "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("suppression mark: %w", err)
	}
	return nil
}
