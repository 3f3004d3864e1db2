// Command migrate applies the embedded schema migrations.
//
// Usage: migrate [up|down|status|version|redo|reset] [args...]
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/pflag"

	"parcel-service/internal/config"
	"parcel-service/internal/migrations"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	command, args := "up", []string(nil)
	if rest := pflag.Args(); len(rest) > 0 {
		command, args = rest[0], rest[1:]
	}

	// pool_max_conns is understood by pgxpool only
	dbCfg := cfg.DB
	dbCfg.MaxConns = 0
	db, err := sql.Open("pgx", dbCfg.DSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db, command, args...); err != nil {
		log.Printf("migrate %s: %v", command, err)
		os.Exit(1)
	}
	log.Printf("migrate %s: done", command)
}
