package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/screenforge/screenforge-backend/config"
	"github.com/screenforge/screenforge-backend/internal/bootstrap"
	"github.com/screenforge/screenforge-backend/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.NewMigrator(db).Run(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Printf("[warn] health pool unavailable: %v", err)
	} else {
		defer pool.Close()
	}

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	authMW, err := bootstrap.AuthMiddleware(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	svc := bootstrap.BuildServices(cfg, db, rdb)
	if !cfg.StorageEnabled() {
		log.Println("[warn] object storage not configured; screenshots are stored inline")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AIRateLimit:    cfg.Server.AIRateLimit,
		DB:             pool,
		Redis:          rdb,
		Auth:           authMW,
		Users:          svc.Users,
		Projects:       svc.Projects,
		Generation:     svc.Generation,
		Runs:           svc.Runs,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s %s listening on :%s (auth=%s)", cfg.App.ServiceName, cfg.App.Version, cfg.Server.Port, cfg.Auth.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] server shutdown: %v", err)
	}
	svc.Runs.Wait()
}
