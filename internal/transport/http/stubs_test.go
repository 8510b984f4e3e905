package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/labstack/echo/v4"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubZoneService struct {
	mu sync.Mutex

	zone    domain.Zone
	zones   []domain.Zone
	names   []string
	events  []domain.LockEvent
	holder  string
	deleted bool
	err     error

	lastActor  string
	lastName   string
	lastQuery  string
	lastRename string
}

func (s *stubZoneService) record(name, actor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastName = name
	s.lastActor = actor
}

func (s *stubZoneService) Register(_ context.Context, in app.RegisterZoneInput) (domain.Zone, error) {
	s.record(in.Name, in.Actor)
	if s.err != nil {
		return domain.Zone{}, s.err
	}
	return domain.Zone{Name: in.Name, CreatedBy: in.Actor, CreatedAt: s.zone.CreatedAt}, nil
}

func (s *stubZoneService) Delete(_ context.Context, name string) (bool, error) {
	s.record(name, "")
	return s.deleted, s.err
}

func (s *stubZoneService) Reserve(_ context.Context, name, actor string) (domain.Zone, error) {
	s.record(name, actor)
	if s.err != nil {
		return domain.Zone{}, s.err
	}
	return domain.Zone{Name: name, IsLocked: true}, nil
}

func (s *stubZoneService) Release(_ context.Context, name, actor string) (domain.Zone, error) {
	s.record(name, actor)
	if s.err != nil {
		return domain.Zone{}, s.err
	}
	return domain.Zone{Name: name}, nil
}

func (s *stubZoneService) Rename(_ context.Context, oldName, newName string) (domain.Zone, error) {
	s.record(oldName, "")
	s.lastRename = newName
	if s.err != nil {
		return domain.Zone{}, s.err
	}
	return domain.Zone{Name: newName}, nil
}

func (s *stubZoneService) Get(_ context.Context, name string) (domain.Zone, error) {
	s.record(name, "")
	return s.zone, s.err
}

func (s *stubZoneService) List(context.Context) ([]domain.Zone, error) {
	return s.zones, s.err
}

func (s *stubZoneService) Search(_ context.Context, substring string) ([]string, error) {
	s.lastQuery = substring
	return s.names, s.err
}

func (s *stubZoneService) CurrentHolder(context.Context, string) (string, bool, error) {
	return s.holder, s.holder != "", nil
}

func (s *stubZoneService) History(_ context.Context, name string) ([]domain.LockEvent, error) {
	s.record(name, "")
	return s.events, s.err
}

type stubImporter struct {
	entries []app.ImportEntry
	result  app.ImportResult
	err     error
}

func (s *stubImporter) Import(_ context.Context, entries []app.ImportEntry) (app.ImportResult, error) {
	s.entries = entries
	return s.result, s.err
}

type stubProfessionService struct {
	list    []domain.Profession
	pseudos []string
	deleted bool
	err     error

	lastInput    app.ProfessionInput
	lastMinLevel int
	lastPseudo   string
}

func (s *stubProfessionService) Register(_ context.Context, in app.ProfessionInput) (domain.Profession, error) {
	s.lastInput = in
	if s.err != nil {
		return domain.Profession{}, s.err
	}
	return domain.Profession{Pseudo: in.Pseudo, Profession: in.Profession, Level: in.Level}, nil
}

func (s *stubProfessionService) Update(_ context.Context, in app.ProfessionInput) (domain.Profession, error) {
	s.lastInput = in
	if s.err != nil {
		return domain.Profession{}, s.err
	}
	return domain.Profession{Pseudo: in.Pseudo, Profession: in.Profession, Level: in.Level}, nil
}

func (s *stubProfessionService) Delete(_ context.Context, pseudo, _ string) (bool, error) {
	s.lastPseudo = pseudo
	return s.deleted, s.err
}

func (s *stubProfessionService) ListArtisans(_ context.Context, _ string, minLevel int) ([]domain.Profession, error) {
	s.lastMinLevel = minLevel
	return s.list, s.err
}

func (s *stubProfessionService) ListByPseudo(_ context.Context, pseudo string) ([]domain.Profession, error) {
	s.lastPseudo = pseudo
	return s.list, s.err
}

func (s *stubProfessionService) ListPseudos(context.Context) ([]string, error) {
	return s.pseudos, s.err
}

func newTestRouter(zones *stubZoneService, imp *stubImporter, prof *stubProfessionService) *echo.Echo {
	if zones == nil {
		zones = &stubZoneService{}
	}
	if imp == nil {
		imp = &stubImporter{}
	}
	if prof == nil {
		prof = &stubProfessionService{}
	}
	return NewRouter(Deps{
		Zones:       zones,
		Importer:    imp,
		Professions: prof,
		IsAdmin:     func(actor string) bool { return actor == "Tocard" },
		Logger:      discardLogger,
	})
}

func do(e *echo.Echo, method, target, actor, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if actor != "" {
		req.Header.Set(HeaderActor, actor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
