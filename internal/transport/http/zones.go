package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/labstack/echo/v4"
)

// ZoneService is what the zone routes need from the registry.
type ZoneService interface {
	Register(ctx context.Context, in app.RegisterZoneInput) (domain.Zone, error)
	Delete(ctx context.Context, name string) (bool, error)
	Reserve(ctx context.Context, name, actor string) (domain.Zone, error)
	Release(ctx context.Context, name, actor string) (domain.Zone, error)
	Rename(ctx context.Context, oldName, newName string) (domain.Zone, error)
	Get(ctx context.Context, name string) (domain.Zone, error)
	List(ctx context.Context) ([]domain.Zone, error)
	Search(ctx context.Context, substring string) ([]string, error)
	CurrentHolder(ctx context.Context, name string) (string, bool, error)
	History(ctx context.Context, name string) ([]domain.LockEvent, error)
}

type ZoneHandler struct {
	svc ZoneService
}

func NewZoneHandler(svc ZoneService) *ZoneHandler {
	return &ZoneHandler{svc: svc}
}

type zoneRequest struct {
	Name string `json:"name"`
}

type zoneResponse struct {
	Name      string    `json:"name"`
	IsLocked  bool      `json:"is_locked"`
	State     string    `json:"state"`
	Holder    string    `json:"holder,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func newZoneResponse(z domain.Zone, holder string) zoneResponse {
	return zoneResponse{
		Name:      z.Name,
		IsLocked:  z.IsLocked,
		State:     string(z.State()),
		Holder:    holder,
		CreatedBy: z.CreatedBy,
		CreatedAt: z.CreatedAt,
	}
}

type lockEventResponse struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

// zoneName returns the :name parameter decoded exactly once. echo routes on
// RawPath when the request carries one (escaped slashes), and leaves the
// parameter encoded in that case only.
func zoneName(c echo.Context) string {
	name := c.Param("name")
	if c.Request().URL.RawPath == "" {
		return name
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// List handles GET /zones. With a q parameter it answers the name search instead.
func (h *ZoneHandler) List(c echo.Context) error {
	if _, ok := c.QueryParams()["q"]; ok {
		return h.Search(c)
	}
	zones, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]zoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, newZoneResponse(z, ""))
	}
	return c.JSON(http.StatusOK, map[string]any{"zones": out})
}

// Create handles POST /zones.
func (h *ZoneHandler) Create(c echo.Context) error {
	var req zoneRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return writeError(c, http.StatusBadRequest, codeZoneNameRequired, "name is required")
	}

	zone, err := h.svc.Register(c.Request().Context(), app.RegisterZoneInput{
		Name:  req.Name,
		Actor: actorFrom(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newZoneResponse(zone, ""))
}

// Search handles GET /zones?q=.
func (h *ZoneHandler) Search(c echo.Context) error {
	names, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, map[string]any{"names": names})
}

// Get handles GET /zones/:name and includes the current holder when locked.
func (h *ZoneHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	name := zoneName(c)

	zone, err := h.svc.Get(ctx, name)
	if err != nil {
		return err
	}
	var holder string
	if zone.IsLocked {
		if holder, _, err = h.svc.CurrentHolder(ctx, zone.Name); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, newZoneResponse(zone, holder))
}

// Delete handles DELETE /zones/:name.
func (h *ZoneHandler) Delete(c echo.Context) error {
	deleted, err := h.svc.Delete(c.Request().Context(), zoneName(c))
	if err != nil {
		return err
	}
	if !deleted {
		return writeError(c, http.StatusNotFound, codeZoneNotFound, domain.ErrZoneNotFound.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Rename handles PUT /zones/:name with the new name in the body.
func (h *ZoneHandler) Rename(c echo.Context) error {
	var req zoneRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return writeError(c, http.StatusBadRequest, codeZoneNameRequired, "name is required")
	}

	zone, err := h.svc.Rename(c.Request().Context(), zoneName(c), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newZoneResponse(zone, ""))
}

// Reserve handles POST /zones/:name/reserve.
func (h *ZoneHandler) Reserve(c echo.Context) error {
	actor := actorFrom(c)
	zone, err := h.svc.Reserve(c.Request().Context(), zoneName(c), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newZoneResponse(zone, actor))
}

// Release handles POST /zones/:name/release.
func (h *ZoneHandler) Release(c echo.Context) error {
	zone, err := h.svc.Release(c.Request().Context(), zoneName(c), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newZoneResponse(zone, ""))
}

// History handles GET /zones/:name/history.
func (h *ZoneHandler) History(c echo.Context) error {
	name := zoneName(c)
	events, err := h.svc.History(c.Request().Context(), name)
	if err != nil {
		return err
	}
	out := make([]lockEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, lockEventResponse{
			ID:         ev.ID,
			Actor:      ev.Actor,
			Kind:       string(ev.Kind),
			OccurredAt: ev.OccurredAt,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"zone": name, "events": out})
}
