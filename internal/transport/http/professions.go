package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/labstack/echo/v4"
)

type ProfessionService interface {
	Register(ctx context.Context, in app.ProfessionInput) (domain.Profession, error)
	Update(ctx context.Context, in app.ProfessionInput) (domain.Profession, error)
	Delete(ctx context.Context, pseudo, profession string) (bool, error)
	ListArtisans(ctx context.Context, profession string, minLevel int) ([]domain.Profession, error)
	ListByPseudo(ctx context.Context, pseudo string) ([]domain.Profession, error)
	ListPseudos(ctx context.Context) ([]string, error)
}

type ProfessionHandler struct {
	svc ProfessionService
}

func NewProfessionHandler(svc ProfessionService) *ProfessionHandler {
	return &ProfessionHandler{svc: svc}
}

// Pseudo defaults to the calling actor when omitted.
type professionRequest struct {
	Pseudo     string `json:"pseudo"`
	Profession string `json:"profession"`
	Level      int    `json:"level"`
}

type professionResponse struct {
	Pseudo     string    `json:"pseudo"`
	Profession string    `json:"profession"`
	Level      int       `json:"level"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newProfessionResponses(in []domain.Profession) []professionResponse {
	out := make([]professionResponse, 0, len(in))
	for _, p := range in {
		out = append(out, professionResponse{
			Pseudo:     p.Pseudo,
			Profession: p.Profession,
			Level:      p.Level,
			UpdatedAt:  p.UpdatedAt,
		})
	}
	return out
}

func pseudoOrActor(c echo.Context, pseudo string) string {
	if p := strings.TrimSpace(pseudo); p != "" {
		return p
	}
	return actorFrom(c)
}

// Catalogue handles GET /professions.
func (h *ProfessionHandler) Catalogue(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"professions": domain.Professions})
}

// Create handles POST /professions.
func (h *ProfessionHandler) Create(c echo.Context) error {
	var req professionRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
	}
	p, err := h.svc.Register(c.Request().Context(), app.ProfessionInput{
		Pseudo:     pseudoOrActor(c, req.Pseudo),
		Profession: req.Profession,
		Level:      req.Level,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newProfessionResponses([]domain.Profession{p})[0])
}

// Update handles PUT /professions/:profession.
func (h *ProfessionHandler) Update(c echo.Context) error {
	var req professionRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
	}
	p, err := h.svc.Update(c.Request().Context(), app.ProfessionInput{
		Pseudo:     pseudoOrActor(c, req.Pseudo),
		Profession: c.Param("profession"),
		Level:      req.Level,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newProfessionResponses([]domain.Profession{p})[0])
}

// Delete handles DELETE /professions/:profession?pseudo=.
func (h *ProfessionHandler) Delete(c echo.Context) error {
	deleted, err := h.svc.Delete(c.Request().Context(), pseudoOrActor(c, c.QueryParam("pseudo")), c.Param("profession"))
	if err != nil {
		return err
	}
	if !deleted {
		return writeError(c, http.StatusNotFound, codeProfessionNotFound, domain.ErrProfessionNotFound.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Artisans handles GET /professions/:profession/artisans?min_level=.
func (h *ProfessionHandler) Artisans(c echo.Context) error {
	minLevel := 0
	if raw := c.QueryParam("min_level"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, http.StatusBadRequest, codeInvalidMinLevel, "min_level must be an integer")
		}
		minLevel = n
	}
	list, err := h.svc.ListArtisans(c.Request().Context(), c.Param("profession"), minLevel)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"artisans": newProfessionResponses(list)})
}

// Pseudos handles GET /artisans.
func (h *ProfessionHandler) Pseudos(c echo.Context) error {
	pseudos, err := h.svc.ListPseudos(c.Request().Context())
	if err != nil {
		return err
	}
	if pseudos == nil {
		pseudos = []string{}
	}
	return c.JSON(http.StatusOK, map[string]any{"pseudos": pseudos})
}

// ByPseudo handles GET /artisans/:pseudo.
func (h *ProfessionHandler) ByPseudo(c echo.Context) error {
	list, err := h.svc.ListByPseudo(c.Request().Context(), c.Param("pseudo"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"professions": newProfessionResponses(list)})
}
