package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"github.com/mjade/warehouse-inventory/internal/config"
	"github.com/mjade/warehouse-inventory/internal/domain/activity"
	"github.com/mjade/warehouse-inventory/internal/domain/appointments"
	"github.com/mjade/warehouse-inventory/internal/domain/catalog"
	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
	"github.com/mjade/warehouse-inventory/internal/domain/reports"
	"github.com/mjade/warehouse-inventory/internal/domain/suppliers"
	"github.com/mjade/warehouse-inventory/internal/domain/users"
	"github.com/mjade/warehouse-inventory/internal/httpapi"
	"github.com/mjade/warehouse-inventory/internal/infra/db"
	"github.com/mjade/warehouse-inventory/internal/infra/logger"
	"github.com/mjade/warehouse-inventory/internal/infra/mailer"
	"github.com/mjade/warehouse-inventory/internal/notify"
	"github.com/mjade/warehouse-inventory/migrations"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	goose.SetBaseFS(migrations.FS)
	return goose.Up(sqlDB, ".")
}

func main() {
	_ = gotenv.Load()

	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/example.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	userRepo := users.NewRepo(pool)
	catalogRepo := catalog.NewRepo(pool)
	supplierRepo := suppliers.NewRepo(pool)
	inventoryRepo := inventory.NewRepo(pool)
	appointmentRepo := appointments.NewRepo(pool)
	activityRepo := activity.NewRepo(pool)
	reportRepo := reports.NewRepo(pool)
	mail := mailer.NewService(cfg)

	api := httpapi.New(log, userRepo, catalogRepo, supplierRepo, inventoryRepo, appointmentRepo, activityRepo, reportRepo, mail)
	srv := httpapi.NewServer(cfg.HTTP.Addr, api, cfg.App.Env, cfg.Metrics.Enabled)

	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	if cfg.Notifier.Enabled {
		worker := notify.NewWorker(log, inventoryRepo, mail, cfg.Notifier.AdminEmail, cfg.Notifier.PollInterval)
		go worker.Run(ctx)
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
