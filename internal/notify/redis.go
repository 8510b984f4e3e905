package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "lbg:zones:events"

// RedisPublisher announces committed lock events on a Redis pub/sub channel so the
// chat bot can refresh zone status messages.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisPublisher(client *redis.Client, channel string, logger *slog.Logger) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Message is the JSON payload published for each lock event.
type Message struct {
	ID         string          `json:"id"`
	Zone       string          `json:"zone"`
	Actor      string          `json:"actor"`
	Kind       domain.LockKind `json:"kind"`
	Locked     bool            `json:"locked"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewMessage(event domain.LockEvent) Message {
	return Message{
		ID:         event.ID,
		Zone:       event.ZoneName,
		Actor:      event.Actor,
		Kind:       event.Kind,
		Locked:     event.Kind == domain.LockKindReserve,
		OccurredAt: event.OccurredAt,
	}
}

func (p *RedisPublisher) PublishLockEvent(ctx context.Context, event domain.LockEvent) error {
	payload, err := json.Marshal(NewMessage(event))
	if err != nil {
		return fmt.Errorf("encode lock event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to channel %s: %w", p.channel, err)
	}
	p.logger.Debug("redis PUBLISH", "channel", p.channel, "zone", event.ZoneName, "kind", event.Kind)
	return nil
}

// Ping checks the connection at startup.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return p.client.Ping(ctx).Err()
}
