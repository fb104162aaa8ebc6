// file: service/publisher.go

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bankist/model"
	"bankist/repository"

	"github.com/redis/go-redis/v9"
)

const sinkTimeout = 2 * time.Second

// IPublisherClient is the part of a Redis client the publisher needs.
// *redis.Client satisfies it.
type IPublisherClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher forwards events as JSON to "<channel>:<username>" so external
// renderers can follow one account. Countdown ticks stay in-process: they are
// published from the countdown goroutine, which must not wait on the network.
type RedisPublisher struct {
	client  IPublisherClient
	channel string
}

func NewRedisPublisher(client IPublisherClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Channel returns the Redis channel carrying username's events.
func (p *RedisPublisher) Channel(username string) string {
	return fmt.Sprintf("%s:%s", p.channel, username)
}

func (p *RedisPublisher) Publish(ctx context.Context, event model.Event) error {
	if event.Type == model.EventSessionTick {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()
	return p.client.Publish(ctx, p.Channel(event.Username), data).Err()
}

// AuditSink records events in the audit repository. Countdown ticks are not recorded.
type AuditSink struct {
	repo repository.IAuditRepository
}

func NewAuditSink(repo repository.IAuditRepository) *AuditSink {
	return &AuditSink{repo: repo}
}

func (a *AuditSink) Publish(ctx context.Context, event model.Event) error {
	if event.Type == model.EventSessionTick {
		return nil
	}
	record := &model.AuditRecord{
		EventType:  string(event.Type),
		Username:   event.Username,
		SessionID:  event.SessionID,
		Reason:     event.Reason,
		OccurredAt: event.At,
	}
	if event.Amount != nil {
		amount := event.Amount.String()
		record.Amount = &amount
	}

	ctx, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()
	return a.repo.Record(ctx, record)
}
