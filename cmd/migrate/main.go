// Migration CLI: applies, rolls back or inspects schema migrations.
//
// Usage:
//
//	migrate -cmd up
//	migrate -cmd down
//	migrate -cmd steps -n -1
//	migrate -cmd version
//	migrate -cmd force -n 3
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/infrastructure/config"
	"github.com/graficaerp/backend/internal/infrastructure/logger"
	"github.com/graficaerp/backend/internal/infrastructure/migration"
)

func main() {
	cmd := flag.String("cmd", "up", "command: up, down, steps, version, force")
	steps := flag.Int("n", 0, "number of steps (steps) or target version (force)")
	path := flag.String("path", "migrations", "path to migration files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	migrator, err := migration.NewFromURL(cfg.Database.DSN(), *path, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() { _ = migrator.Close() }()

	switch *cmd {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		if *steps == 0 {
			log.Fatal("steps requires -n")
		}
		err = migrator.Steps(*steps)
	case "version":
		version, dirty, verr := migrator.Version()
		if verr != nil {
			log.Fatal("Failed to read version", zap.Error(verr))
		}
		log.Info("Migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	case "force":
		err = migrator.Force(*steps)
	default:
		log.Fatal("Unknown command", zap.String("cmd", *cmd))
	}

	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}
