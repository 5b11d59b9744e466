package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"priceoffers/db"
	"priceoffers/db/migrations"
	"priceoffers/internal/config"
	"priceoffers/internal/handlers"
	"priceoffers/internal/logger"
	"priceoffers/internal/market"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := sqlx.ConnectContext(ctx, "postgres", cfg.PostgresConn)
	if err != nil {
		return fmt.Errorf("cannot connect to DB: %w", err)
	}
	defer dbConn.Close()

	if cfg.RunMigrations {
		if err := migrations.Run(ctx, dbConn.DB, log); err != nil {
			return err
		}
	}

	store := db.NewStorage(dbConn)
	svc := market.New(store, log)
	h := handlers.NewHandler(svc, log)
	auth := handlers.NewAuthenticator(cfg.JWTSecret)

	if cfg.ExpirySweepInterval > 0 {
		go market.NewSweeper(svc, log, cfg.ExpirySweepInterval).Run(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           handlers.Router(h, auth, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
