package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfessionRepository struct {
	pool *pgxpool.Pool
}

func NewProfessionRepository(pool *pgxpool.Pool) *ProfessionRepository {
	return &ProfessionRepository{pool: pool}
}

func (r *ProfessionRepository) CreateProfession(ctx context.Context, p domain.Profession) error {
	const stmt = `
INSERT INTO professions (pseudo, profession, level, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, stmt, p.Pseudo, p.Profession, p.Level, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfessionExists
		}
		return storageErr("create profession", err)
	}
	return nil
}

func (r *ProfessionRepository) UpdateProfessionLevel(ctx context.Context, pseudo, profession string, level int, updatedAt time.Time) (domain.Profession, error) {
	const stmt = `
UPDATE professions
SET level = $3, updated_at = $4
WHERE pseudo = $1 AND profession = $2
RETURNING pseudo, profession, level, created_at, updated_at`

	var p domain.Profession
	err := r.pool.QueryRow(ctx, stmt, pseudo, profession, level, updatedAt).
		Scan(&p.Pseudo, &p.Profession, &p.Level, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profession{}, domain.ErrProfessionNotFound
		}
		return domain.Profession{}, storageErr("update profession", err)
	}
	return p, nil
}

func (r *ProfessionRepository) DeleteProfession(ctx context.Context, pseudo, profession string) (bool, error) {
	const stmt = `DELETE FROM professions WHERE pseudo = $1 AND profession = $2`

	tag, err := r.pool.Exec(ctx, stmt, pseudo, profession)
	if err != nil {
		return false, storageErr("delete profession", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProfessionRepository) ListArtisans(ctx context.Context, profession string, minLevel int) ([]domain.Profession, error) {
	const query = `
SELECT pseudo, profession, level, created_at, updated_at
FROM professions
WHERE profession = $1 AND level > $2
ORDER BY level DESC, pseudo ASC`

	return r.list(ctx, "list artisans", query, profession, minLevel)
}

func (r *ProfessionRepository) ListProfessionsByPseudo(ctx context.Context, pseudo string) ([]domain.Profession, error) {
	const query = `
SELECT pseudo, profession, level, created_at, updated_at
FROM professions
WHERE pseudo = $1
ORDER BY profession ASC`

	return r.list(ctx, "list professions by pseudo", query, pseudo)
}

func (r *ProfessionRepository) ListPseudos(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT pseudo FROM professions ORDER BY pseudo ASC`)
	if err != nil {
		return nil, storageErr("list pseudos", err)
	}
	defer rows.Close()

	pseudos, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storageErr("collect pseudos", err)
	}
	return pseudos, nil
}

func (r *ProfessionRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Profession, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var out []domain.Profession
	for rows.Next() {
		var p domain.Profession
		if err := rows.Scan(&p.Pseudo, &p.Profession, &p.Level, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, storageErr("scan profession", err)
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, storageErr(op, rows.Err())
	}
	return out, nil
}
