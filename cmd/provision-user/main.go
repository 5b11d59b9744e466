// provision-user заводит пользователя в базе вместе с приветственным уведомлением
// и печатает для него bearer-токен. Регистрация в API не входит, поэтому
// пользователей создаёт оператор.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
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
	name := flag.String("name", "", "user display name")
	email := flag.String("email", "", "user e-mail")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := run(strings.TrimSpace(*name), strings.TrimSpace(*email), *ttl); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(name, email string, ttl time.Duration) error {
	if name == "" || email == "" {
		return errors.New("both -name and -email are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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

	svc := market.New(db.NewStorage(dbConn), log)
	u, err := svc.RegisterUser(ctx, name, email)
	if err != nil {
		if errors.Is(err, market.ErrConflict) {
			return fmt.Errorf("user with e-mail %s already exists", email)
		}
		return fmt.Errorf("register user: %w", err)
	}

	token, err := handlers.NewAuthenticator(cfg.JWTSecret).Issue(u.ID, ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Println(token)
	return nil
}
