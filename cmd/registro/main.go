// main is the entry point of the registro-studenti application.
//
// STARTUP SEQUENCE:
//  1. Load configuration (config file, env vars, or defaults)
//  2. Initialise the logger
//  3. Open the storage backend (JSON file or SQLite)
//  4. Run the interactive menu loop until the operator exits
//
// RUNNING IT:
//
//	go run ./cmd/registro
//
// or with an explicit config:
//
//	go run ./cmd/registro --config=config/local.yaml
//	CONFIG_PATH=config/local.yaml go run ./cmd/registro
package main

import (
	"log/slog"
	"os"

	"github.com/acolli/registro-studenti/internal/config"
	"github.com/acolli/registro-studenti/internal/roster"
	"github.com/acolli/registro-studenti/internal/storage"
	"github.com/acolli/registro-studenti/internal/storage/jsonfile"
	"github.com/acolli/registro-studenti/internal/storage/sqlite"
	"github.com/acolli/registro-studenti/internal/ui"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad never returns a broken config; with no file and no env
	// vars it falls back to the defaults (jsonfile driver,
	// ./registro.json).
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21). It writes
	// to STDERR: stdout belongs to the menu, and mixing log lines into
	// the prompts would make the program unusable behind a pipe.
	//
	// SetDefault lets the inner packages call slog.Info/Warn directly
	// instead of threading a logger through every constructor.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting registro-studenti",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.StorageDriver),
		slog.String("path", cfg.StoragePath),
	)

	// ── 3. Open Storage ───────────────────────────────────────────────────
	// Both backends satisfy the storage.Storage interface, so from
	// here on nothing knows (or cares) which one is in use.
	var store storage.Storage
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			log.Error("failed to open sqlite storage",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Db.Close()
		store = db
	case config.DriverJSONFile:
		store = jsonfile.New(cfg.StoragePath)
	default:
		log.Error("unknown storage driver",
			slog.String("driver", cfg.StorageDriver))
		os.Exit(1)
	}

	// ── 4. Run the Menu ───────────────────────────────────────────────────
	// The loop owns stdin/stdout and returns only on menu choice 0 or
	// end of input. Recoverable errors never reach this level — the
	// menu reports them and keeps going.
	menu := ui.New(roster.New(store), os.Stdin, os.Stdout)
	menu.Run()

	log.Info("registro-studenti stopped")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
