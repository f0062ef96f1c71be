// Package notify implements the notification-intent sink on Redis
// pub/sub. The external dispatcher subscribes to the channel, delivers
// the notification, and deduplicates by the intent's dedupe key.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KishoreKammela/JobBoardly-sub000/internal/moderation"
)

// Channel carries every generated notification intent.
const Channel = "NOTIFICATION_INTENTS"

// Sink publishes intents for the dispatcher.
type Sink struct {
	rdb *redis.Client
}

// NewSink returns a configured Sink.
func NewSink(rdb *redis.Client) *Sink {
	return &Sink{rdb: rdb}
}

// envelope is the published message shape. The envelope ID identifies
// this publication; the dedupe key identifies the transition outcome,
// so a retried publication keeps the same dedupe key under a new
// envelope ID.
type envelope struct {
	ID     string                        `json:"id"`
	Intent moderation.NotificationIntent `json:"intent"`
}

// Enqueue publishes one intent.
func (s *Sink) Enqueue(ctx context.Context, intent moderation.NotificationIntent) error {
	msg, err := json.Marshal(envelope{ID: uuid.New().String(), Intent: intent})
	if err != nil {
		return fmt.Errorf("marshal intent: %w", err)
	}
	if err := s.rdb.Publish(ctx, Channel, msg).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", Channel, err)
	}
	return nil
}
