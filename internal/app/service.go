package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/shipregistry/config"
	"github.com/guttosm/shipregistry/internal/api"
	"github.com/guttosm/shipregistry/internal/logger"
	"github.com/guttosm/shipregistry/internal/service"
	"github.com/guttosm/shipregistry/internal/storage"
	"github.com/redis/go-redis/v9"
)

// dependencies are the external resources the ship service runs on.
// db is nil in memory mode, rdb is nil when the cache is disabled.
type dependencies struct {
	db  *sql.DB
	rdb *redis.Client
}

// openDependencies connects to the configured storage and cache.
// The returned cleanup closes whatever was opened.
func openDependencies(cfg config.Config) (dependencies, func(), error) {
	var deps dependencies
	log := logger.For("app")

	if cfg.StorageDriver != config.StorageMemory {
		db, err := postgresOpener(cfg)
		if err != nil {
			return dependencies{}, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		deps.db = db
	}

	if cfg.Redis.Enabled() {
		rdb, err := redisOpener(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unreachable, ship lookups will fall through to storage")
		}
		deps.rdb = rdb
	}

	cleanup := func() {
		if deps.rdb != nil {
			_ = deps.rdb.Close()
		}
		if deps.db != nil {
			_ = deps.db.Close()
		}
	}
	return deps, cleanup, nil
}

// repository builds the storage chain: Postgres or memory, optionally
// fronted by the Redis cache.
func (d dependencies) repository(cfg config.Config) storage.ShipsRepository {
	var repo storage.ShipsRepository
	if d.db != nil {
		repo = storage.NewShipsRepository(d.db)
	} else {
		repo = storage.NewMemoryShipsRepository()
	}
	if d.rdb != nil {
		repo = storage.NewCachedShipsRepository(repo, d.rdb, cfg.Redis.TTL)
	}
	return repo
}

// checks lists the readiness probes for the opened dependencies.
func (d dependencies) checks() []api.Check {
	var out []api.Check
	if d.db != nil {
		out = append(out, api.Check{Name: "postgres", Critical: true, Ping: d.db.PingContext})
	}
	if d.rdb != nil {
		out = append(out, api.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return d.rdb.Ping(ctx).Err()
		}})
	}
	return out
}

// InitializeService wires the ship service without the HTTP layer.
// The import mode uses it to create ships through the same validation and
// rating rules as the API.
func InitializeService() (service.ShipService, func(), error) {
	cfg := config.AppConfig
	deps, cleanup, err := openDependencies(cfg)
	if err != nil {
		return nil, nil, err
	}
	return service.NewShipService(deps.repository(cfg)), cleanup, nil
}
