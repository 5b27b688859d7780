package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"parcel-service/internal/pkg/config"
	"parcel-service/internal/pkg/postgres"
	"parcel-service/migrations"
	"parcel-service/pkg/logger/zap_adapter"
	"parcel-service/pkg/querier"
	"parcel-service/pkg/tx"
)

var (
	querierInstance *querier.Querier
	txInstance      *tx.Manager
	querierOnce     sync.Once
)

func GetQuerier() *querier.Querier {
	initOnce()
	return querierInstance
}

// GetTxManager shares the pool with GetQuerier so repositories join its transactions.
func GetTxManager() *tx.Manager {
	initOnce()
	return txInstance
}

func initOnce() {
	querierOnce.Do(func() {
		// godotenv.Load(.env.test) не вызываем так как Makefile подгружает их
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}

		ctx := context.Background()

		zapLogger, err := zap_adapter.NewZapAdapter("error")
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			panic(err)
		}

		db := stdlib.OpenDBFromPool(connPool)
		if err := migrations.Up(ctx, db); err != nil {
			panic(err)
		}

		querierInstance = querier.New(connPool, pgxv5.DefaultCtxGetter)
		txInstance = tx.New(connPool)
	})
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if setupSql == "" {
		return
	}

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE payments, parcel_events, parcels, riders, users RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
