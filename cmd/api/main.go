package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/application"
	appStore "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/application/store"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/config"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/database"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/export"
	nestlyHttp "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http"
	appHandler "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/application"
	exportHandler "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/export"
	importHandler "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/importcsv"
	leaseHandler "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/lease"
	templateHandler "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/template"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/job"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
	leaseStore "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease/store"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/metrics"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/rentroll"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/template"
	templateStore "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/template/store"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var (
		applicationService = application.NewService(appStore.New(db))
		templateService    = template.NewService(templateStore.New(db))
		leaseService       = lease.NewService(leaseStore.New(db), applicationService, templateService,
			lease.WithRenewalHorizon(cfg.Lease.RenewalHorizonDays),
			lease.WithRentIncreaseWarnPercent(cfg.Lease.RentIncreaseWarnPercent),
		)
		rentRollService = rentroll.NewService(leaseService)
		exportService   = export.NewService(leaseService, cfg.Documents.BaseURL, cfg.Documents.APIToken, cfg.Documents.Timeout)
		m               = metrics.New()
	)

	router := nestlyHttp.New(nestlyHttp.Handlers{
		Applications: appHandler.NewHandler(applicationService),
		Leases:       leaseHandler.NewHandler(leaseService),
		Templates:    templateHandler.NewHandler(templateService),
		Import:       importHandler.NewHandler(rentRollService),
		Export:       exportHandler.NewHandler(exportService, leaseService.Now),
	}, nestlyHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        m,
		Health:         db.PingContext,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := job.NewScheduler(cfg.Server.Timeout)

	if cfg.Jobs.RenewalDigestEnabled {
		digest := job.NewRenewalDigest(leaseService, m)
		if err := scheduler.Add("renewal-digest", cfg.Jobs.RenewalDigestSchedule, digest.Run); err != nil {
			return err
		}
	}

	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
