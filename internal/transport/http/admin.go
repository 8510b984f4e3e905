package http

import (
	"context"
	"net/http"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/labstack/echo/v4"
)

// ZoneImporter is the minimal interface needed to bulk-load zones.
type ZoneImporter interface {
	Import(ctx context.Context, entries []app.ImportEntry) (app.ImportResult, error)
}

type importRequest struct {
	Zones []importZone `json:"zones"`
}

type importZone struct {
	Name  string `json:"name"`
	Actor string `json:"actor"`
}

type importResponse struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// HandleImportZones returns the POST /admin/zones/import handler.
func HandleImportZones(svc ZoneImporter) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req importRequest
		if err := c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		}

		entries := make([]app.ImportEntry, 0, len(req.Zones))
		for _, z := range req.Zones {
			entries = append(entries, app.ImportEntry{Name: z.Name, Actor: z.Actor})
		}

		result, err := svc.Import(c.Request().Context(), entries)
		if err != nil {
			return err
		}

		resp := importResponse{Created: result.Created, Skipped: result.Skipped}
		if resp.Created == nil {
			resp.Created = []string{}
		}
		if resp.Skipped == nil {
			resp.Skipped = []string{}
		}
		return c.JSON(http.StatusOK, resp)
	}
}
