// Command item applies the item schema migrations.
//
//	go run ./migrations/item          # apply pending migrations
//	go run ./migrations/item status   # print migration state
package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/itemvalidation/pkg/config"
	"github.com/ghuser/itemvalidation/pkg/logger"
	"github.com/ghuser/itemvalidation/pkg/migrator"
)

//go:embed *.sql
var migrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg).With("component", "migrate")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := migrator.New(cfg.DefinitionDatabaseURL, migrationsFS, log)
	if err != nil {
		log.Error("migrator init failed", "error", err)
		os.Exit(1)
	}
	defer m.Close() //nolint:errcheck

	run := m.Up
	if len(os.Args) > 1 && os.Args[1] == "status" {
		run = m.Status
	}
	if err := run(ctx); err != nil {
		log.Error("migration failed", "error", err)
		stop()
		os.Exit(1)
	}
}
