package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Tocard/DiscordDofusBotLGB/internal/clock"
	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/google/uuid"
)

// ZoneRepository persists zones. Writes made through a context returned by WithTx
// share the same transaction.
type ZoneRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateZone(ctx context.Context, zone domain.Zone) error
	GetZone(ctx context.Context, name string) (domain.Zone, error)
	GetZoneForUpdate(ctx context.Context, name string) (domain.Zone, error)
	SetZoneLocked(ctx context.Context, name string, locked bool) error
	RenameZone(ctx context.Context, oldName, newName string) error
	DeleteZone(ctx context.Context, name string) (bool, error)
	ListZones(ctx context.Context) ([]domain.Zone, error)
	SearchZoneNames(ctx context.Context, substring string, limit int) ([]string, error)
}

// LockLedger is the append-only history of reservations and releases.
type LockLedger interface {
	AppendLockEvent(ctx context.Context, event domain.LockEvent) error
	CurrentHolder(ctx context.Context, zoneName string) (string, bool, error)
	ListLockEvents(ctx context.Context, zoneName string) ([]domain.LockEvent, error)
}

// ZoneService is the zone registry backed by the store and the lock ledger.
type ZoneService struct {
	zones         ZoneRepository
	ledger        LockLedger
	clock         clock.Clock
	publisher     EventPublisher
	logger        *slog.Logger
	strictRelease bool
	searchLimit   int
}

const defaultSearchLimit = 25

func NewZoneService(zones ZoneRepository, ledger LockLedger, clk clock.Clock, opts ...ZoneServiceOption) *ZoneService {
	svc := &ZoneService{
		zones:       zones,
		ledger:      ledger,
		clock:       clk,
		publisher:   noopPublisher{},
		logger:      slog.Default(),
		searchLimit: defaultSearchLimit,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ZoneServiceOption configures a ZoneService.
type ZoneServiceOption func(*ZoneService)

// WithStrictRelease makes Release reject actors other than the current holder.
func WithStrictRelease(strict bool) ZoneServiceOption {
	return func(s *ZoneService) {
		s.strictRelease = strict
	}
}

// WithSearchLimit caps the number of names returned by Search.
func WithSearchLimit(n int) ZoneServiceOption {
	return func(s *ZoneService) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

func WithPublisher(p EventPublisher) ZoneServiceOption {
	return func(s *ZoneService) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithLogger(l *slog.Logger) ZoneServiceOption {
	return func(s *ZoneService) {
		if l != nil {
			s.logger = l
		}
	}
}

// RegisterZoneInput names the zone to create and who creates it.
type RegisterZoneInput struct {
	Name  string
	Actor string
}

func (s *ZoneService) Register(ctx context.Context, in RegisterZoneInput) (domain.Zone, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Zone{}, domain.ErrZoneNameRequired
	}
	if in.Actor == "" {
		return domain.Zone{}, domain.ErrActorRequired
	}

	zone := domain.Zone{
		Name:      name,
		IsLocked:  false,
		CreatedBy: in.Actor,
		CreatedAt: s.clock.Now(),
	}
	if err := s.zones.CreateZone(ctx, zone); err != nil {
		return domain.Zone{}, err
	}

	s.logger.Info("zone registered", "zone", name, "actor", in.Actor)
	return zone, nil
}

// Delete removes the zone and its ledger. A missing zone yields false, not an error.
func (s *ZoneService) Delete(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, domain.ErrZoneNameRequired
	}

	deleted, err := s.zones.DeleteZone(ctx, name)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("zone deleted", "zone", name)
	} else {
		s.logger.Debug("zone delete skipped, not found", "zone", name)
	}
	return deleted, nil
}

func (s *ZoneService) Reserve(ctx context.Context, name, actor string) (domain.Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Zone{}, domain.ErrZoneNameRequired
	}
	if actor == "" {
		return domain.Zone{}, domain.ErrActorRequired
	}

	var (
		result domain.Zone
		event  domain.LockEvent
	)
	err := s.zones.WithTx(ctx, func(txCtx context.Context) error {
		zone, err := s.zones.GetZoneForUpdate(txCtx, name)
		if err != nil {
			return err
		}
		if zone.IsLocked {
			holder, _, err := s.ledger.CurrentHolder(txCtx, name)
			if err != nil {
				return err
			}
			return &domain.ZoneLockedError{Zone: name, Holder: holder}
		}

		event = domain.LockEvent{
			ID:         uuid.NewString(),
			ZoneName:   name,
			Actor:      actor,
			Kind:       domain.LockKindReserve,
			OccurredAt: s.clock.Now(),
		}
		if err := s.ledger.AppendLockEvent(txCtx, event); err != nil {
			return err
		}
		if err := s.zones.SetZoneLocked(txCtx, name, true); err != nil {
			return err
		}

		zone.IsLocked = true
		result = zone
		return nil
	})
	if err != nil {
		return domain.Zone{}, err
	}

	s.logger.Info("zone reserved", "zone", name, "actor", actor)
	s.publish(ctx, event)
	return result, nil
}

func (s *ZoneService) Release(ctx context.Context, name, actor string) (domain.Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Zone{}, domain.ErrZoneNameRequired
	}
	if actor == "" {
		return domain.Zone{}, domain.ErrActorRequired
	}

	var (
		result domain.Zone
		event  domain.LockEvent
	)
	err := s.zones.WithTx(ctx, func(txCtx context.Context) error {
		zone, err := s.zones.GetZoneForUpdate(txCtx, name)
		if err != nil {
			return err
		}
		if !zone.IsLocked {
			return domain.ErrZoneNotLocked
		}
		if s.strictRelease {
			holder, ok, err := s.ledger.CurrentHolder(txCtx, name)
			if err != nil {
				return err
			}
			if !ok || holder != actor {
				return domain.ErrNotHolder
			}
		}

		event = domain.LockEvent{
			ID:         uuid.NewString(),
			ZoneName:   name,
			Actor:      actor,
			Kind:       domain.LockKindRelease,
			OccurredAt: s.clock.Now(),
		}
		if err := s.ledger.AppendLockEvent(txCtx, event); err != nil {
			return err
		}
		if err := s.zones.SetZoneLocked(txCtx, name, false); err != nil {
			return err
		}

		zone.IsLocked = false
		result = zone
		return nil
	})
	if err != nil {
		return domain.Zone{}, err
	}

	s.logger.Info("zone released", "zone", name, "actor", actor)
	s.publish(ctx, event)
	return result, nil
}

// Rename moves a zone to a new name. Ledger rows follow through the foreign key.
func (s *ZoneService) Rename(ctx context.Context, oldName, newName string) (domain.Zone, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return domain.Zone{}, domain.ErrZoneNameRequired
	}

	var result domain.Zone
	err := s.zones.WithTx(ctx, func(txCtx context.Context) error {
		zone, err := s.zones.GetZoneForUpdate(txCtx, oldName)
		if err != nil {
			return err
		}
		if oldName == newName {
			result = zone
			return nil
		}
		if err := s.zones.RenameZone(txCtx, oldName, newName); err != nil {
			return err
		}
		zone.Name = newName
		result = zone
		return nil
	})
	if err != nil {
		return domain.Zone{}, err
	}

	s.logger.Info("zone renamed", "zone", oldName, "new_name", newName)
	return result, nil
}

func (s *ZoneService) Get(ctx context.Context, name string) (domain.Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Zone{}, domain.ErrZoneNameRequired
	}
	return s.zones.GetZone(ctx, name)
}

// List returns every zone ordered by name.
func (s *ZoneService) List(ctx context.Context) ([]domain.Zone, error) {
	return s.zones.ListZones(ctx)
}

// Search returns up to the configured limit of zone names containing substring,
// compared case-insensitively. An empty substring matches every zone.
func (s *ZoneService) Search(ctx context.Context, substring string) ([]string, error) {
	return s.zones.SearchZoneNames(ctx, strings.TrimSpace(substring), s.searchLimit)
}

// CurrentHolder resolves who holds the zone from the ledger.
func (s *ZoneService) CurrentHolder(ctx context.Context, name string) (string, bool, error) {
	name = strings.TrimSpace(name)
	if _, err := s.Get(ctx, name); err != nil {
		return "", false, err
	}
	return s.ledger.CurrentHolder(ctx, name)
}

// History returns the ledger of a zone, oldest first.
func (s *ZoneService) History(ctx context.Context, name string) ([]domain.LockEvent, error) {
	name = strings.TrimSpace(name)
	if _, err := s.Get(ctx, name); err != nil {
		return nil, err
	}
	return s.ledger.ListLockEvents(ctx, name)
}

func (s *ZoneService) publish(ctx context.Context, event domain.LockEvent) {
	if err := s.publisher.PublishLockEvent(ctx, event); err != nil {
		s.logger.Warn("publish lock event failed",
			"zone", event.ZoneName,
			"kind", event.Kind,
			"error", err,
		)
	}
}
