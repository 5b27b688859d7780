package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"parcel-service/internal/pkg/config"
	"parcel-service/migrations"
	"parcel-service/pkg/logger"
	"parcel-service/pkg/logger/zap_adapter"
)

const usage = "usage: migrate [-timeout 1m] up|down|status"

func main() {
	timeout := flag.Duration("timeout", time.Minute, "migration deadline")
	flag.Parse()

	// .env is optional here.
	_ = godotenv.Load()

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var log logger.Logger = zapLogger

	if flag.NArg() != 1 {
		log.Error(usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, log, flag.Arg(0)); err != nil {
		log.Error("migrate failed",
			logger.NewField("command", flag.Arg(0)),
			logger.NewField("error", err),
		)
		cancel()
		os.Exit(1) //nolint:gocritic // deferred Sync is not critical on failure
	}
}

func run(ctx context.Context, log logger.Logger, command string) error {
	dbConfig, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("pgx", dbConfig.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	switch command {
	case "up":
		if err := migrations.Up(ctx, db); err != nil {
			return err
		}
		log.Info("migrations applied")
	case "down":
		if err := migrations.Down(ctx, db); err != nil {
			return err
		}
		log.Info("last migration rolled back")
	case "status":
		statuses, err := migrations.Status(ctx, db)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			log.Info("migration",
				logger.NewField("version", s.Source.Version),
				logger.NewField("path", s.Source.Path),
				logger.NewField("state", string(s.State)),
				logger.NewField("applied_at", s.AppliedAt),
			)
		}
	default:
		return fmt.Errorf("unknown command %q, %s", command, usage)
	}
	return nil
}
