package notify

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 2, 1, 18, 0, 0, 0, time.UTC)
	msg := NewMessage(domain.LockEvent{
		ID: "ev-1", ZoneName: "Bastion", Actor: "Kiwi", Kind: domain.LockKindReserve, OccurredAt: at,
	})
	assert.True(t, msg.Locked)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"ev-1","zone":"Bastion","actor":"Kiwi","kind":"reserve","locked":true,"occurred_at":"2025-02-01T18:00:00Z"}`,
		string(raw),
	)

	release := NewMessage(domain.LockEvent{Kind: domain.LockKindRelease})
	assert.False(t, release.Locked)
}

func TestRedisPublisher_PublishLockEvent(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	pub := NewRedisPublisher(client, "lbg:test:zones", nil)
	ctx := context.Background()
	if err := pub.Ping(ctx); err != nil {
		t.Skipf("skipping Redis integration test: %v", err)
	}

	sub := client.Subscribe(ctx, "lbg:test:zones")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, pub.PublishLockEvent(ctx, domain.LockEvent{
		ID: "ev-1", ZoneName: "Bastion", Actor: "Kiwi", Kind: domain.LockKindReserve, OccurredAt: time.Now().UTC(),
	}))

	select {
	case m := <-sub.Channel():
		var got Message
		require.NoError(t, json.Unmarshal([]byte(m.Payload), &got))
		assert.Equal(t, "Bastion", got.Zone)
		assert.Equal(t, domain.LockKindReserve, got.Kind)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}
