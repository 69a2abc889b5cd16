package publisher

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
	"github.com/Nazarious-ucu/weather-display/pkg/messaging"
)

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink publishes state events on a Redis pub/sub channel.
type RedisSink struct {
	client  redisPublisher
	channel string
	logger  zerolog.Logger
}

func NewRedisSink(client redisPublisher, logger zerolog.Logger) *RedisSink {
	return &RedisSink{
		client:  client,
		channel: messaging.RedisStateChannel,
		logger:  logger.With().Str("component", "RedisSink").Logger(),
	}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Send(ctx context.Context, ev models.StateEvent) error {
	data, err := json.Marshal(messaging.NewStateChangedEvent(ev))
	if err != nil {
		return err
	}

	receivers, err := s.client.Publish(ctx, s.channel, data).Result()
	if err != nil {
		return err
	}
	s.logger.Debug().
		Str("channel", s.channel).
		Int64("receivers", receivers).
		Msg("state event published")
	return nil
}

func NewRedisConnection(addr string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, DB: db})
}
