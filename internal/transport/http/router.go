package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	Zones       ZoneService
	Importer    ZoneImporter
	Professions ProfessionService
	// IsAdmin decides who may delete, rename and import zones.
	IsAdmin func(actor string) bool
	Logger  *slog.Logger
}

// NewRouter builds the echo instance with every route registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(d.Logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(d.Logger))

	e.GET("/health", HealthHandler)
	RegisterZoneRoutes(e, d)
	RegisterProfessionRoutes(e, d)
	return e
}

func RegisterZoneRoutes(e *echo.Echo, d Deps) {
	h := NewZoneHandler(d.Zones)
	admin := RequireAdmin(d.IsAdmin)

	zones := e.Group("/zones", RequireActor())
	{
		zones.GET("", h.List)
		zones.POST("", h.Create)
		zones.GET("/:name", h.Get)
		zones.DELETE("/:name", h.Delete, admin)
		zones.PUT("/:name", h.Rename, admin)
		zones.POST("/:name/reserve", h.Reserve)
		zones.POST("/:name/release", h.Release)
		zones.GET("/:name/history", h.History)
	}

	adminGroup := e.Group("/admin", RequireActor(), admin)
	adminGroup.POST("/zones/import", HandleImportZones(d.Importer))
}

func RegisterProfessionRoutes(e *echo.Echo, d Deps) {
	h := NewProfessionHandler(d.Professions)

	professions := e.Group("/professions", RequireActor())
	{
		professions.GET("", h.Catalogue)
		professions.POST("", h.Create)
		professions.PUT("/:profession", h.Update)
		professions.DELETE("/:profession", h.Delete)
		professions.GET("/:profession/artisans", h.Artisans)
	}

	artisans := e.Group("/artisans", RequireActor())
	artisans.GET("", h.Pseudos)
	artisans.GET("/:pseudo", h.ByPseudo)
}
