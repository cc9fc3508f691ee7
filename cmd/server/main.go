package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/config"
	"github.com/goliatone/go-accounts/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	accounts.HashCost = cfg.BcryptCost

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if cfg.Env != config.Production {
		// Production schema changes go through the external migration
		// pipeline; dev and test create tables in place.
		if err := accounts.CreateSchema(ctx, db); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}

	repo := accounts.NewRepositoryManager(db)
	repo.MustValidate()

	srv := server.New(cfg, db, repo)

	go func() {
		if err := srv.Listen(); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
