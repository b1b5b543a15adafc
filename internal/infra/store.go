package infra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/congo-pay/pocketbank/internal/config"
	"github.com/congo-pay/pocketbank/internal/records"
)

// Resources holds the connections opened for the configured record store.
// Fields for drivers that are not in use stay nil.
type Resources struct {
	Store  *records.Store
	SQLite *sql.DB
	DB     *pgxpool.Pool
	Cache  *redis.Client
}

// OpenStore connects the backend selected by cfg.StoreDriver, applies its
// migrations and wraps it in a records.Store. Redis is connected whenever
// REDIS_URL is set, since middleware uses it regardless of the driver.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Resources, error) {
	res := &Resources{}

	if cfg.RedisURL != "" {
		cache, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		res.Cache = cache
	}

	var backend records.Backend
	switch cfg.StoreDriver {
	case config.DriverMemory:
		backend = records.NewMemoryBackend()
	case config.DriverSQLite:
		db, err := NewSQLiteDB(ctx, cfg.StorePath)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.SQLite = db
		if err := records.MigrateSQLite(ctx, db); err != nil {
			res.Close()
			return nil, err
		}
		backend = records.NewSQLiteBackend(db)
	case config.DriverPostgres:
		pool, err := NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.DB = pool
		if err := records.MigratePostgres(ctx, SQLFromPool(pool)); err != nil {
			res.Close()
			return nil, err
		}
		backend = records.NewPostgresBackend(pool)
	case config.DriverRedis:
		if res.Cache == nil {
			return nil, fmt.Errorf("redis store requires REDIS_URL")
		}
		backend = records.NewRedisBackend(res.Cache, "pocketbank:")
	default:
		res.Close()
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	res.Store = records.NewStore(backend, cfg.StoreKey, logger)
	logger.Info("record store ready", slog.String("driver", cfg.StoreDriver), slog.String("key", res.Store.Key()))
	return res, nil
}

// Ping checks every open connection.
func (r *Resources) Ping(ctx context.Context) map[string]error {
	out := map[string]error{}
	if r.SQLite != nil {
		out["sqlite"] = r.SQLite.PingContext(ctx)
	}
	if r.DB != nil {
		out["postgres"] = r.DB.Ping(ctx)
	}
	if r.Cache != nil {
		out["redis"] = r.Cache.Ping(ctx).Err()
	}
	return out
}

// Close releases every open connection.
func (r *Resources) Close() error {
	var errs []error
	if r.SQLite != nil {
		errs = append(errs, r.SQLite.Close())
	}
	if r.DB != nil {
		r.DB.Close()
	}
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	return errors.Join(errs...)
}
