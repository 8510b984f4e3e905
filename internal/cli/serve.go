package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/Tocard/DiscordDofusBotLGB/internal/clock"
	"github.com/Tocard/DiscordDofusBotLGB/internal/importer"
	"github.com/Tocard/DiscordDofusBotLGB/internal/notify"
	"github.com/Tocard/DiscordDofusBotLGB/internal/storage/postgres"
	transporthttp "github.com/Tocard/DiscordDofusBotLGB/internal/transport/http"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.serve(cmd.Context())
		},
	}
}

func (rt *runtime) serve(parent context.Context) error {
	cfg, log := rt.cfg, rt.logger

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, applied, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	if len(applied) > 0 {
		log.Info("migrations applied", "names", applied)
	}

	zoneRepo := postgres.NewZoneRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	clk := clock.NewSystem()

	opts := []app.ZoneServiceOption{
		app.WithStrictRelease(cfg.Registry.StrictRelease),
		app.WithSearchLimit(cfg.Registry.SearchLimit),
		app.WithLogger(log),
	}
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer client.Close()
		publisher := notify.NewRedisPublisher(client, cfg.Redis.Channel, log)
		if err := publisher.Ping(ctx); err != nil {
			log.Warn("redis unreachable at startup", "addr", cfg.Redis.Addr, "error", err)
		}
		opts = append(opts, app.WithPublisher(publisher))
	}

	zoneSvc := app.NewZoneService(zoneRepo, ledgerRepo, clk, opts...)
	importSvc := app.NewImportService(zoneRepo, clk, log)
	professionSvc := app.NewProfessionService(postgres.NewProfessionRepository(pool), clk, log)

	if cfg.Import.Schedule != "" {
		sched, err := importer.NewScheduler(cfg.Import.Schedule, cfg.Import.Source, importSvc, log)
		if err != nil {
			return err
		}
		sched.Start(ctx)
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			sched.Stop(stopCtx)
		}()
	}

	e := transporthttp.NewRouter(transporthttp.Deps{
		Zones:       zoneSvc,
		Importer:    importSvc,
		Professions: professionSvc,
		IsAdmin:     cfg.Admin.IsAdmin,
		Logger:      log,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: e,
	}

	log.Info("api listening", "port", cfg.HTTP.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server shutdown error", "error", err)
	}
	log.Info("server stopped")
	return runErr
}
