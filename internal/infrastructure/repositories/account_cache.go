package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedAccountRepository decorates a domain.AccountRepository with a Redis
// read-through cache for lookups by id. Writes go to the store first, then
// bump the account's version key and evict the cached entry. A read only
// fills the cache if the version it saw before loading is still current.
type CachedAccountRepository struct {
	domain.AccountRepository
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedAccountRepository wraps next with a Redis cache
func NewCachedAccountRepository(next domain.AccountRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) domain.AccountRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedAccountRepository{
		AccountRepository: next,
		client:            client,
		prefix:            "account:",
		ttl:               ttl,
		logger:            logger,
	}
}

func (r *CachedAccountRepository) key(id uuid.UUID) string {
	return r.prefix + id.String()
}

func (r *CachedAccountRepository) versionKey(id uuid.UUID) string {
	return r.prefix + id.String() + ":version"
}

// errStaleRead aborts a cache fill that raced with a write
var errStaleRead = errors.New("account changed during read")

// FindByID implements domain.AccountRepository. Cache failures degrade to a
// direct store read.
func (r *CachedAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == nil {
		var account domain.Account
		if err := json.Unmarshal(data, &account); err == nil {
			return &account, nil
		}
		r.logger.Warn("discarding undecodable cached account", zap.String("account_id", id.String()))
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("account cache read failed", zap.String("account_id", id.String()), zap.Error(err))
	}

	version, verr := r.version(ctx, r.client, id)

	account, err := r.AccountRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if verr == nil {
		r.store(ctx, account, version)
	}
	return account, nil
}

// Update implements domain.AccountRepository
func (r *CachedAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if err := r.AccountRepository.Update(ctx, account); err != nil {
		return err
	}
	r.evict(ctx, account.ID)
	return nil
}

// TouchLastLogin implements domain.AccountRepository
func (r *CachedAccountRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := r.AccountRepository.TouchLastLogin(ctx, id, at); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *CachedAccountRepository) version(ctx context.Context, c stringGetter, id uuid.UUID) (int64, error) {
	v, err := c.Get(ctx, r.versionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// store writes account under WATCH on its version key, so a write that
// landed after the read was issued discards the fill.
func (r *CachedAccountRepository) store(ctx context.Context, account *domain.Account, seen int64) {
	data, err := json.Marshal(account)
	if err != nil {
		r.logger.Warn("failed to marshal account for cache", zap.Error(err))
		return
	}

	versionKey := r.versionKey(account.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.version(ctx, tx, account.ID)
		if err != nil {
			return err
		}
		if current != seen {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key(account.ID), data, r.ttl)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redis.TxFailedErr):
		r.logger.Debug("skipping stale account cache fill", zap.String("account_id", account.ID.String()))
	default:
		r.logger.Warn("account cache write failed", zap.String("account_id", account.ID.String()), zap.Error(err))
	}
}

func (r *CachedAccountRepository) evict(ctx context.Context, id uuid.UUID) {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, r.versionKey(id))
		if r.ttl > 0 {
			pipe.Expire(ctx, r.versionKey(id), 2*r.ttl)
		}
		pipe.Del(ctx, r.key(id))
		return nil
	})
	if err != nil {
		r.logger.Error("account cache eviction failed", zap.String("account_id", id.String()), zap.Error(err))
	}
}
