package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/robfig/cron/v3"
)

type Importer interface {
	Import(ctx context.Context, entries []app.ImportEntry) (app.ImportResult, error)
}

// ParseSchedule accepts a 5-field cron expression or a descriptor such as @hourly.
func ParseSchedule(spec string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule, nil
}

// Scheduler re-imports a seed file on a cron schedule so zones added to the
// source show up without an admin running the import by hand.
type Scheduler struct {
	cron     *cron.Cron
	importer Importer
	source   string
	actor    string
	logger   *slog.Logger

	running sync.Mutex
	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewScheduler(spec, source string, imp Importer, logger *slog.Logger) (*Scheduler, error) {
	if source == "" {
		return nil, fmt.Errorf("import source is required")
	}
	schedule, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scheduler{
		cron:     cron.New(),
		importer: imp,
		source:   source,
		actor:    app.DefaultImportActor,
		logger:   logger,
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.tick))
	return s, nil
}

// RunOnce loads the source and imports it.
func (s *Scheduler) RunOnce(ctx context.Context) (app.ImportResult, error) {
	entries, err := LoadFile(s.source, s.actor)
	if err != nil {
		return app.ImportResult{}, err
	}
	return s.importer.Import(ctx, entries)
}

func (s *Scheduler) Start(ctx context.Context) {
	s.baseCtx, s.cancel = context.WithCancel(ctx)
	s.logger.Info("starting zone import scheduler", "source", s.source)
	s.cron.Start()
}

// Stop halts scheduling and waits for a running import until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("zone import scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("timeout waiting for scheduled import to complete")
	}
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) tick() {
	if !s.running.TryLock() {
		s.logger.Warn("previous scheduled import still running, skipping")
		return
	}
	defer s.running.Unlock()

	ctx := s.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("scheduled zone import failed", "source", s.source, "error", err)
		return
	}
	s.logger.Info("scheduled zone import done",
		"source", s.source,
		"created", result.CreatedCount(),
		"skipped", len(result.Skipped),
	)
}
