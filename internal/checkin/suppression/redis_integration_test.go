//go:build integration

package suppression_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatepass/internal/checkin/suppression"
	"gatepass/pkg/domain"
	"gatepass/pkg/testutil/containers"
)

type RedisSuppressionSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *suppression.Redis
}

func TestRedisSuppressionSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSuppressionSuite))
}

func (s *RedisSuppressionSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = suppression.NewRedis(s.redis.Client, 2*time.Second)
}

func (s *RedisSuppressionSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisSuppressionSuite) key() suppression.Key {
	return suppression.Key{
		AttendeeID: domain.NewAttendeeID(),
		Action:     domain.ActionEntrance,
		Day:        domain.Day1,
	}
}

func (s *RedisSuppressionSuite) TestSeenAfterMark() {
	ctx := context.Background()
	key := s.key()
	now := time.Now()

	seen, err := s.store.Seen(ctx, key, now)
	s.Require().NoError(err)
	s.False(seen)

	s.Require().NoError(s.store.Mark(ctx, key, now))

	seen, err = s.store.Seen(ctx, key, now)
	s.Require().NoError(err)
	s.True(seen)

	// Unrelated keys stay unmarked.
	seen, err = s.store.Seen(ctx, s.key(), now)
	s.Require().NoError(err)
	s.False(seen)
}

func (s *RedisSuppressionSuite) TestMarkExpires() {
	ctx := context.Background()
	key := s.key()

	s.Require().NoError(s.store.Mark(ctx, key, time.Now()))

	s.Require().Eventually(func() bool {
		seen, err := s.store.Seen(ctx, key, time.Now())
		return err == nil && !seen
	}, 5*time.Second, 200*time.Millisecond, "the redis TTL clears the window")
}
