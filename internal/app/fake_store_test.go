package app

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
)

// fakeZoneStore backs ZoneRepository, LockLedger and ImportRepository in memory.
// WithTx runs transactions one at a time and restores a snapshot when fn fails.
type fakeZoneStore struct {
	txMu sync.Mutex

	mu        sync.Mutex
	zones     map[string]domain.Zone
	events    []domain.LockEvent
	appendErr error
}

func newFakeZoneStore(zones ...domain.Zone) *fakeZoneStore {
	z := make(map[string]domain.Zone, len(zones))
	for _, zone := range zones {
		z[zone.Name] = zone
	}
	return &fakeZoneStore{zones: z}
}

func (f *fakeZoneStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	zones := make(map[string]domain.Zone, len(f.zones))
	for k, v := range f.zones {
		zones[k] = v
	}
	events := append([]domain.LockEvent{}, f.events...)
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.zones = zones
		f.events = events
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeZoneStore) CreateZone(_ context.Context, zone domain.Zone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.zones[zone.Name]; ok {
		return domain.ErrZoneAlreadyExists
	}
	f.zones[zone.Name] = zone
	return nil
}

func (f *fakeZoneStore) InsertZoneIfAbsent(ctx context.Context, zone domain.Zone) (bool, error) {
	if err := f.CreateZone(ctx, zone); err != nil {
		if err == domain.ErrZoneAlreadyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *fakeZoneStore) GetZone(_ context.Context, name string) (domain.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	zone, ok := f.zones[name]
	if !ok {
		return domain.Zone{}, domain.ErrZoneNotFound
	}
	return zone, nil
}

func (f *fakeZoneStore) GetZoneForUpdate(ctx context.Context, name string) (domain.Zone, error) {
	return f.GetZone(ctx, name)
}

func (f *fakeZoneStore) SetZoneLocked(_ context.Context, name string, locked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	zone, ok := f.zones[name]
	if !ok {
		return domain.ErrZoneNotFound
	}
	zone.IsLocked = locked
	f.zones[name] = zone
	return nil
}

func (f *fakeZoneStore) RenameZone(_ context.Context, oldName, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	zone, ok := f.zones[oldName]
	if !ok {
		return domain.ErrZoneNotFound
	}
	if _, taken := f.zones[newName]; taken {
		return domain.ErrZoneAlreadyExists
	}
	delete(f.zones, oldName)
	zone.Name = newName
	f.zones[newName] = zone
	for i := range f.events {
		if f.events[i].ZoneName == oldName {
			f.events[i].ZoneName = newName
		}
	}
	return nil
}

func (f *fakeZoneStore) DeleteZone(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.zones[name]; !ok {
		return false, nil
	}
	delete(f.zones, name)
	kept := f.events[:0]
	for _, ev := range f.events {
		if ev.ZoneName != name {
			kept = append(kept, ev)
		}
	}
	f.events = kept
	return true, nil
}

func (f *fakeZoneStore) ListZones(_ context.Context) ([]domain.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Zone, 0, len(f.zones))
	for _, zone := range f.zones {
		out = append(out, zone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeZoneStore) SearchZoneNames(_ context.Context, substring string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	needle := strings.ToLower(substring)
	var out []string
	for name := range f.zones {
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeZoneStore) AppendLockEvent(_ context.Context, event domain.LockEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	if _, ok := f.zones[event.ZoneName]; !ok {
		return domain.ErrZoneNotFound
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeZoneStore) CurrentHolder(_ context.Context, zoneName string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		ev := f.events[i]
		if ev.ZoneName != zoneName {
			continue
		}
		if ev.Kind == domain.LockKindReserve {
			return ev.Actor, true, nil
		}
		return "", false, nil
	}
	return "", false, nil
}

func (f *fakeZoneStore) ListLockEvents(_ context.Context, zoneName string) ([]domain.LockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.LockEvent
	for _, ev := range f.events {
		if ev.ZoneName == zoneName {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeZoneStore) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.LockEvent
	err    error
}

func (p *recordingPublisher) PublishLockEvent(_ context.Context, event domain.LockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}
