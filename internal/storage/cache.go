package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/guttosm/shipregistry/internal/domain/models"
	"github.com/guttosm/shipregistry/internal/logger"
	"github.com/guttosm/shipregistry/internal/query"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// cacheClient is the subset of *redis.Client used by the cache.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// cachedShipsRepository is a read-through Redis cache in front of single
// ship lookups. Writes go to the wrapped repository first and then evict the
// cached entry. Redis failures never fail a request; they are logged and the
// wrapped repository answers instead.
type cachedShipsRepository struct {
	next ShipsRepository
	rdb  cacheClient
	ttl  time.Duration
	log  zerolog.Logger
}

// NewCachedShipsRepository wraps next with a Redis cache for FindByID and ExistsByID.
func NewCachedShipsRepository(next ShipsRepository, rdb cacheClient, ttl time.Duration) ShipsRepository {
	return &cachedShipsRepository{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  logger.For("ship-cache"),
	}
}

func shipKey(id int64) string {
	return "ship:" + strconv.FormatInt(id, 10)
}

func (r *cachedShipsRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.rdb.Exists(ctx, shipKey(id)).Result()
	if err != nil {
		r.log.Warn().Err(err).Int64("id", id).Msg("cache exists failed")
	} else if n > 0 {
		return true, nil
	}
	return r.next.ExistsByID(ctx, id)
}

func (r *cachedShipsRepository) FindByID(ctx context.Context, id int64) (*models.Ship, error) {
	key := shipKey(id)
	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s models.Ship
		if jerr := json.Unmarshal(raw, &s); jerr == nil {
			return &s, nil
		}
		r.log.Warn().Int64("id", id).Msg("discarding undecodable cache entry")
	case errors.Is(err, redis.Nil):
	default:
		r.log.Warn().Err(err).Int64("id", id).Msg("cache get failed")
	}

	s, err := r.next.FindByID(ctx, id)
	if err != nil || s == nil {
		return s, err
	}
	r.store(ctx, *s)
	return s, nil
}

func (r *cachedShipsRepository) FindAll(ctx context.Context, spec query.Spec, order query.Order, page query.Page) ([]models.Ship, error) {
	return r.next.FindAll(ctx, spec, order, page)
}

func (r *cachedShipsRepository) Count(ctx context.Context, spec query.Spec) (int64, error) {
	return r.next.Count(ctx, spec)
}

func (r *cachedShipsRepository) Save(ctx context.Context, ship models.Ship) (models.Ship, error) {
	saved, err := r.next.Save(ctx, ship)
	if err != nil {
		return saved, err
	}
	r.evict(ctx, saved.ID)
	return saved, nil
}

func (r *cachedShipsRepository) SaveAndFlush(ctx context.Context, ship models.Ship) (models.Ship, error) {
	saved, err := r.next.SaveAndFlush(ctx, ship)
	if err != nil {
		return saved, err
	}
	r.evict(ctx, saved.ID)
	return saved, nil
}

func (r *cachedShipsRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.next.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *cachedShipsRepository) store(ctx context.Context, s models.Ship) {
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, shipKey(s.ID), b, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Int64("id", s.ID).Msg("cache set failed")
	}
}

func (r *cachedShipsRepository) evict(ctx context.Context, id int64) {
	if err := r.rdb.Del(ctx, shipKey(id)).Err(); err != nil {
		r.log.Warn().Err(err).Int64("id", id).Msg("cache evict failed")
	}
}
