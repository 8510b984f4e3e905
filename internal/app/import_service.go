package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Tocard/DiscordDofusBotLGB/internal/clock"
	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
)

// DefaultImportActor is recorded as creator when an entry carries no actor.
const DefaultImportActor = "BOT"

type ImportRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// InsertZoneIfAbsent reports false when a zone with the same name already exists.
	InsertZoneIfAbsent(ctx context.Context, zone domain.Zone) (bool, error)
}

// ImportService bulk-registers zones from seed lists.
type ImportService struct {
	repo   ImportRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewImportService(repo ImportRepository, clk clock.Clock, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

// ImportEntry is one zone to register. An empty Actor means DefaultImportActor.
type ImportEntry struct {
	Name  string
	Actor string
}

// ImportResult lists the names created and the names skipped, in input order.
type ImportResult struct {
	Created []string
	Skipped []string
}

// CreatedCount is the number of zones the import actually added.
func (r ImportResult) CreatedCount() int {
	return len(r.Created)
}

// Import registers entries in one transaction. Blank names and names that already
// exist, including repeats inside the batch, are skipped; a storage failure aborts
// the whole batch.
func (s *ImportService) Import(ctx context.Context, entries []ImportEntry) (ImportResult, error) {
	now := s.clock.Now()
	var result ImportResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		result = ImportResult{}
		for _, entry := range entries {
			name := strings.TrimSpace(entry.Name)
			if name == "" {
				s.logger.Warn("import entry skipped, empty name")
				result.Skipped = append(result.Skipped, entry.Name)
				continue
			}
			actor := entry.Actor
			if actor == "" {
				actor = DefaultImportActor
			}

			created, err := s.repo.InsertZoneIfAbsent(txCtx, domain.Zone{
				Name:      name,
				IsLocked:  false,
				CreatedBy: actor,
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
			if !created {
				s.logger.Info("import entry skipped, zone exists", "zone", name)
				result.Skipped = append(result.Skipped, name)
				continue
			}
			result.Created = append(result.Created, name)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	s.logger.Info("zone import finished",
		"created", len(result.Created),
		"skipped", len(result.Skipped),
	)
	return result, nil
}
