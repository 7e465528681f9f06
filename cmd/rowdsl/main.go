// Command rowdsl applies a JSON changeset of row inserts and updates to a
// SQLite, PostgreSQL or MySQL database.
//
// Usage:
//
//	rowdsl [-dry-run] changeset.json
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/asaidimu/rowdsl/internal/config"
	"github.com/asaidimu/rowdsl/internal/logging"
	"github.com/asaidimu/rowdsl/pkg/core"
	"github.com/asaidimu/rowdsl/pkg/mysql"
	"github.com/asaidimu/rowdsl/pkg/postgres"
	"github.com/asaidimu/rowdsl/pkg/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	dryRun := flag.Bool("dry-run", false, "print SQL instead of executing it")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rowdsl [-dry-run] changeset.json")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0), *dryRun || cfg.Apply.DryRun, os.Stdout); err != nil {
		slog.Error("changeset failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string, dryRun bool, out io.Writer) error {
	changes, err := core.LoadChangeset(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Apply.Timeout)
	defer cancel()
	ctx = logging.WithRunID(ctx, uuid.NewString())

	logger := logging.WithFields(ctx, "changeset", path, "driver", cfg.Database.Driver)
	logger.Info("changeset loaded", "changes", len(changes), "dry_run", dryRun)

	// a dry run only renders, so no connection is opened
	if dryRun {
		dialect := dialectFor(cfg.Database.Driver)
		rendered, err := core.Render(ctx, core.NewGenerator(dialect), dialect, changes...)
		if err != nil {
			return err
		}
		for _, stmt := range rendered {
			fmt.Fprintf(out, "%s;\n", stmt.SQL)
		}
		return nil
	}

	exec, closeDB, err := openExecutor(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := exec.Apply(ctx, changes...)
	if err != nil {
		return err
	}
	for _, msg := range result.Confirmations {
		fmt.Fprintln(out, msg)
	}
	return nil
}

func dialectFor(driver string) core.Dialect {
	switch driver {
	case "postgres":
		return postgres.Dialect{}
	case "mysql":
		return mysql.Dialect{}
	default:
		return sqlite.SqliteDialect{}
	}
}

func openExecutor(ctx context.Context, cfg *config.Config) (core.MutationExecutor, func(), error) {
	maxLOB := cfg.Apply.MaxLargeObjectBytes

	switch cfg.Database.Driver {
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.Database.URL, int32(cfg.Database.MaxConns))
		if err != nil {
			return nil, nil, err
		}
		exec := postgres.NewExecutor(pool)
		exec.MaxLargeObjectBytes = maxLOB
		return exec, pool.Close, nil

	case "mysql":
		db, err := mysql.Open(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		exec := mysql.NewExecutor(db)
		exec.MaxLargeObjectBytes = maxLOB
		return exec, closer(db), nil

	default:
		db, err := sqlite.Open(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		exec := sqlite.NewSqliteExecutor(db)
		exec.MaxLargeObjectBytes = maxLOB
		return exec, closer(db), nil
	}
}

func closer(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}
}
