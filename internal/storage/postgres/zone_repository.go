package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ZoneRepository struct {
	pool *pgxpool.Pool
}

func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

func (r *ZoneRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ZoneRepository) CreateZone(ctx context.Context, zone domain.Zone) error {
	const stmt = `
INSERT INTO zones (name, is_locked, created_by, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := dbFrom(ctx, r.pool).Exec(ctx, stmt, zone.Name, zone.IsLocked, zone.CreatedBy, zone.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrZoneAlreadyExists
		}
		return storageErr("create zone", err)
	}
	return nil
}

func (r *ZoneRepository) InsertZoneIfAbsent(ctx context.Context, zone domain.Zone) (bool, error) {
	const stmt = `
INSERT INTO zones (name, is_locked, created_by, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO NOTHING`

	tag, err := dbFrom(ctx, r.pool).Exec(ctx, stmt, zone.Name, zone.IsLocked, zone.CreatedBy, zone.CreatedAt)
	if err != nil {
		return false, storageErr("insert zone", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ZoneRepository) GetZone(ctx context.Context, name string) (domain.Zone, error) {
	const query = `SELECT name, is_locked, created_by, created_at FROM zones WHERE name = $1`
	return r.getZone(ctx, query, name)
}

// GetZoneForUpdate row-locks the zone until the surrounding transaction ends, so
// concurrent reservations of the same zone run one after the other.
func (r *ZoneRepository) GetZoneForUpdate(ctx context.Context, name string) (domain.Zone, error) {
	const query = `SELECT name, is_locked, created_by, created_at FROM zones WHERE name = $1 FOR UPDATE`
	return r.getZone(ctx, query, name)
}

func (r *ZoneRepository) getZone(ctx context.Context, query, name string) (domain.Zone, error) {
	var z domain.Zone
	err := dbFrom(ctx, r.pool).QueryRow(ctx, query, name).Scan(&z.Name, &z.IsLocked, &z.CreatedBy, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Zone{}, domain.ErrZoneNotFound
		}
		return domain.Zone{}, storageErr("get zone", err)
	}
	return z, nil
}

func (r *ZoneRepository) SetZoneLocked(ctx context.Context, name string, locked bool) error {
	const stmt = `UPDATE zones SET is_locked = $2 WHERE name = $1`

	tag, err := dbFrom(ctx, r.pool).Exec(ctx, stmt, name, locked)
	if err != nil {
		return storageErr("set zone locked", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrZoneNotFound
	}
	return nil
}

func (r *ZoneRepository) RenameZone(ctx context.Context, oldName, newName string) error {
	const stmt = `UPDATE zones SET name = $2 WHERE name = $1`

	tag, err := dbFrom(ctx, r.pool).Exec(ctx, stmt, oldName, newName)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrZoneAlreadyExists
		}
		return storageErr("rename zone", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrZoneNotFound
	}
	return nil
}

// DeleteZone removes the zone; lock_events rows go with it through ON DELETE CASCADE.
func (r *ZoneRepository) DeleteZone(ctx context.Context, name string) (bool, error) {
	const stmt = `DELETE FROM zones WHERE name = $1`

	tag, err := dbFrom(ctx, r.pool).Exec(ctx, stmt, name)
	if err != nil {
		return false, storageErr("delete zone", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ZoneRepository) ListZones(ctx context.Context) ([]domain.Zone, error) {
	const query = `
SELECT name, is_locked, created_by, created_at
FROM zones
ORDER BY name ASC`

	rows, err := dbFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, storageErr("list zones", err)
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		var z domain.Zone
		if err := rows.Scan(&z.Name, &z.IsLocked, &z.CreatedBy, &z.CreatedAt); err != nil {
			return nil, storageErr("scan zone", err)
		}
		zones = append(zones, z)
	}
	if rows.Err() != nil {
		return nil, storageErr("iterate zones", rows.Err())
	}
	return zones, nil
}

// SearchZoneNames matches substring anywhere in the name, ignoring case.
// A limit <= 0 returns every match.
func (r *ZoneRepository) SearchZoneNames(ctx context.Context, substring string, limit int) ([]string, error) {
	const query = `
SELECT name
FROM zones
WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY name ASC
LIMIT $2`

	var lim any
	if limit > 0 {
		lim = limit
	}

	rows, err := dbFrom(ctx, r.pool).Query(ctx, query, escapeLike(substring), lim)
	if err != nil {
		return nil, storageErr("search zones", err)
	}
	defer rows.Close()

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storageErr("collect zone names", err)
	}
	return names, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
