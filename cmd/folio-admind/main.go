// Command folio-admind is the admin console backend: a versioned, role-gated
// configuration store with an immutable audit trail.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/folioreads/folio-admin/internal/api"
	"github.com/folioreads/folio-admin/internal/config"
	"github.com/folioreads/folio-admin/internal/db"
	"github.com/folioreads/folio-admin/internal/db/migrations"
	"github.com/folioreads/folio-admin/internal/dbpool"
	"github.com/folioreads/folio-admin/internal/service"
	"github.com/folioreads/folio-admin/internal/store"
	"github.com/folioreads/folio-admin/internal/ws"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("parsing log level")
	}
	log.SetLevel(level)

	if err := run(log, cfg); err != nil {
		log.WithError(err).Fatal("server exited with error")
	}
}

func run(log *logrus.Logger, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	settingStore := store.NewSettingStore(base)
	userStore := store.NewUserStore(base)
	auditStore := store.NewAuditStore(base)

	hub := ws.NewHub(log)

	worker := service.NewAuditWorker(auditStore, log, cfg.AuditQueueSize, cfg.AuditMaxAttempts)
	worker.SetBroadcaster(hub)

	settingSvc := service.NewSettingService(settingStore, worker, log)
	userSvc := service.NewUserService(userStore, worker, log)
	auditSvc := service.NewAuditService(auditStore, log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Hub:         hub,
		Settings:    settingSvc,
		Users:       userSvc,
		Audit:       auditSvc,
		ActorLookup: &base,
		CORSOrigins: cfg.CORSOrigins,
		Version:     version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The hub outlives gctx: the shutdown goroutine drains it explicitly
		// once the HTTP server has stopped accepting requests.
		hub.Run(context.Background())
		return nil
	})

	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": version,
		}).Info("folio-admind listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)

		// Drain feed subscribers only after the server stops accepting
		// requests, so no new client registers mid-drain.
		hub.Shutdown()

		return err
	})

	err = g.Wait()
	log.Info("server stopped")

	return err
}
