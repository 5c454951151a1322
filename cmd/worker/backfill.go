package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/screenforge/screenforge-backend/config"
	"github.com/screenforge/screenforge-backend/internal/bootstrap"
	"github.com/screenforge/screenforge-backend/internal/logging"
	"github.com/screenforge/screenforge-backend/internal/storage/postgres"
)

// RunBackfill renders screens that were configured but never got code, then exits.
func RunBackfill(args []string) {
	cfg, db := open()
	defer db.Close()

	limit := cfg.Worker.BackfillLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			log.Fatalf("invalid limit %q", args[0])
		}
		limit = n
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := backfill(ctx, cfg, db, limit); err != nil {
		log.Fatalf("backfill failed: %v", err)
	}
}

// RunSchedule runs the backfill on WORKER_BACKFILL_SCHEDULE until interrupted.
func RunSchedule(_ []string) {
	cfg, db := open()
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(cfg.Worker.BackfillSchedule, func() {
		if err := backfill(ctx, cfg, db, cfg.Worker.BackfillLimit); err != nil {
			logging.New(ctx).Error("scheduled_backfill", err)
		}
	})
	if err != nil {
		log.Fatalf("invalid schedule %q: %v", cfg.Worker.BackfillSchedule, err)
	}

	log.Printf("backfill scheduled: %s (limit=%d)", cfg.Worker.BackfillSchedule, cfg.Worker.BackfillLimit)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
}

func backfill(ctx context.Context, cfg *config.Config, db *sql.DB, limit int) error {
	svc := bootstrap.BuildServices(cfg, db, nil)
	n, err := svc.Generation.Backfill(ctx, limit)
	if err != nil {
		return err
	}
	logging.New(ctx).Infof("backfill", "rendered %d screens", n)
	return nil
}

func open() (*config.Config, *sql.DB) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := postgres.NewMigrator(db).Run(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	return cfg, db
}
