package postgres

import (
	"context"
	"errors"

	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository stores lock_events. It exposes no update or delete.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) AppendLockEvent(ctx context.Context, event domain.LockEvent) error {
	const stmt = `
INSERT INTO lock_events (id, zone_name, actor, kind, occurred_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := dbFrom(ctx, r.pool).Exec(ctx, stmt,
		event.ID,
		event.ZoneName,
		event.Actor,
		event.Kind,
		event.OccurredAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrZoneNotFound
		}
		return storageErr("append lock event", err)
	}
	return nil
}

// CurrentHolder looks at the latest event: a reserve means its actor still holds the zone.
func (r *LedgerRepository) CurrentHolder(ctx context.Context, zoneName string) (string, bool, error) {
	const query = `
SELECT actor, kind
FROM lock_events
WHERE zone_name = $1
ORDER BY seq DESC
LIMIT 1`

	var (
		actor string
		kind  domain.LockKind
	)
	err := dbFrom(ctx, r.pool).QueryRow(ctx, query, zoneName).Scan(&actor, &kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, storageErr("current holder", err)
	}
	if kind != domain.LockKindReserve {
		return "", false, nil
	}
	return actor, true, nil
}

func (r *LedgerRepository) ListLockEvents(ctx context.Context, zoneName string) ([]domain.LockEvent, error) {
	const query = `
SELECT id, zone_name, actor, kind, occurred_at
FROM lock_events
WHERE zone_name = $1
ORDER BY seq ASC`

	rows, err := dbFrom(ctx, r.pool).Query(ctx, query, zoneName)
	if err != nil {
		return nil, storageErr("list lock events", err)
	}
	defer rows.Close()

	var events []domain.LockEvent
	for rows.Next() {
		var ev domain.LockEvent
		if err := rows.Scan(&ev.ID, &ev.ZoneName, &ev.Actor, &ev.Kind, &ev.OccurredAt); err != nil {
			return nil, storageErr("scan lock event", err)
		}
		events = append(events, ev)
	}
	if rows.Err() != nil {
		return nil, storageErr("iterate lock events", rows.Err())
	}
	return events, nil
}
