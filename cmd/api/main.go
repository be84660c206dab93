package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/galleauto-billing/internal/bootstrap"
	"github.com/sangkips/galleauto-billing/internal/config"
	"github.com/sangkips/galleauto-billing/internal/infrastructure/database"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/handler"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/routes"
	"github.com/sangkips/galleauto-billing/pkg/logger"
)

const purgeInterval = time.Hour

func main() {
	cfg := config.Load()

	if err := logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := bootstrap.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer app.Close()

	if err := database.AutoMigrate(app.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	handlers := &routes.Handlers{
		Item:    handler.NewItemHandler(app.Catalog, app.Stock),
		Stock:   handler.NewStockHandler(app.Stock),
		Invoice: handler.NewInvoiceHandler(app.Invoices),
		Report:  handler.NewReportHandler(app.Reports),
		Printer: handler.NewPrinterHandler(app.Printer),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: app.IdempotencyRepo,
	})

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go purgeIdempotencyKeys(sigCtx, app)

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		log.Info().Str("app", cfg.App.Name).Str("env", cfg.App.Env).Str("addr", cfg.App.Addr()).Msg("starting server")
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// purgeIdempotencyKeys drops expired keys until ctx is cancelled.
func purgeIdempotencyKeys(ctx context.Context, app *bootstrap.App) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.IdempotencyRepo.DeleteExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("failed to purge idempotency keys")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("purged idempotency keys")
			}
		}
	}
}
