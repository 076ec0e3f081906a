package backend

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"lace-store/internal/cart"
	"lace-store/internal/config"
	"lace-store/internal/database"
	"lace-store/internal/datastore"
	"lace-store/internal/repository"
	"lace-store/internal/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OpenRepositories connects the storage driver named in the config.
// The returned DB is nil unless the postgres driver is used.
func OpenRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Repositories, *sql.DB, error) {
	switch cfg.Store.Driver {
	case config.DriverRemote:
		if cfg.Store.URL == "" {
			return nil, nil, fmt.Errorf("DATASTORE_URL is required for the %s store driver", config.DriverRemote)
		}
		client := datastore.NewClient(cfg.Store.URL, cfg.Store.Timeout, logger)
		logger.Info("Using remote data store", zap.String("url", cfg.Store.URL))
		return datastore.New(client), nil, nil

	case config.DriverPostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database health check", zap.Any("health", database.Health(ctx, db)))

		if err := database.RunMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewPostgres(db), db, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return repository.NewMemory(), nil, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// OpenRedis connects to redis when it is configured. A nil client means
// carts live in process memory.
func OpenRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis is unreachable, falling back to in-memory carts", zap.Error(err))
		client.Close()
		return nil
	}

	logger.Info("Connected to redis", zap.String("addr", client.Options().Addr))
	return client
}

// Open assembles every backend the API server needs
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (server.Deps, error) {
	repos, db, err := OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return server.Deps{}, err
	}

	deps := server.Deps{Repos: repos, DB: db}

	if client := OpenRedis(ctx, cfg.Redis, logger); client != nil {
		deps.Redis = client
		deps.Carts = cart.NewRedisStorage(client, cfg.Redis.CartTTL)
	} else {
		deps.Carts = cart.NewMemoryStorage()
	}

	return deps, nil
}
