package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CoalValleyTech/span-sportshub/internal/schedule"
)

// ScoreChannel is the pub/sub channel score events go out on.
const ScoreChannel = "scores.events"

// ScoreEvent is one score change on a flat schedule record.
type ScoreEvent struct {
	RecordID   string          `json:"recordId"`
	Sport      string          `json:"sport,omitempty"`
	SchoolName string          `json:"schoolName,omitempty"`
	Opponent   string          `json:"opponent,omitempty"`
	Status     string          `json:"status"`
	Score      *schedule.Score `json:"score,omitempty"`
	At         time.Time       `json:"at"`
}

// RedisPublisher publishes score events over Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher from a Redis URL.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// NewRedisPublisherFromClient wraps an existing client.
func NewRedisPublisherFromClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client: client,
	}
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishScoreUpdate sends a score event to the channel.
func (rp *RedisPublisher) PublishScoreUpdate(ctx context.Context, event ScoreEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return rp.client.Publish(ctx, ScoreChannel, data).Err()
}

// Subscribe opens a subscription on the score channel. The caller owns the
// returned subscription and must close it.
func (rp *RedisPublisher) Subscribe(ctx context.Context) *redis.PubSub {
	return rp.client.Subscribe(ctx, ScoreChannel)
}
