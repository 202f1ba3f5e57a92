// Package events publishes domain events to Redis pub/sub channels.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel names.
const (
	ChannelCandidateSaved       = "candidate.saved"
	ChannelApplicationSubmitted = "application.submitted"
)

// CandidateSaved is published when an employer bookmarks a candidate for the first time.
type CandidateSaved struct {
	EmployerID  uuid.UUID `json:"employerId"`
	CandidateID uuid.UUID `json:"candidateId"`
	SavedAt     time.Time `json:"savedAt"`
}

// ApplicationSubmitted is published when a candidate applies to a job.
type ApplicationSubmitted struct {
	ApplicationID   uuid.UUID `json:"applicationId"`
	JobID           uuid.UUID `json:"jobId"`
	EmployerID      uuid.UUID `json:"employerId"`
	CandidateUserID uuid.UUID `json:"candidateUserId"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// Publisher sends an event payload to a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// redisPublishClient is the subset of *redis.Client used for publishing.
type redisPublishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes JSON-encoded events with PUBLISH.
type RedisPublisher struct {
	client redisPublishClient
}

// NewRedisPublisher wraps a connected Redis client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish encodes payload as JSON and publishes it on channel.
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", channel, err)
	}
	if err := p.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", channel, err)
	}
	return nil
}

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// NopPublisher discards every event. Used when no Redis URL is configured.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }
