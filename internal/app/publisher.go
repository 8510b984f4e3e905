package app

import (
	"context"

	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
)

// EventPublisher fans committed ledger events out to listeners such as the chat bot.
type EventPublisher interface {
	PublishLockEvent(ctx context.Context, event domain.LockEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishLockEvent(context.Context, domain.LockEvent) error {
	return nil
}
