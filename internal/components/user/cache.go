package user

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type (
	cachedRepo struct {
		inner  Repository
		rdb    *redis.Client
		ttl    time.Duration
		logger zerolog.Logger
	}

	// cacheRecord is the stored shape. User hides the password hash from
	// JSON, so the cache carries its own field for it.
	cacheRecord struct {
		User
		PasswordHash string `json:"password_hash"`
	}
)

// NewCachedRepo decorates a Repository with a Redis read-through cache keyed
// by both id and email. Cache failures degrade to the inner store.
func NewCachedRepo(inner Repository, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) Repository {
	return &cachedRepo{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "user_cache").Logger(),
	}
}

func (c *cachedRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u := c.lookup(ctx, emailKey(email)); u != nil {
		return u, nil
	}

	u, err := c.inner.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	c.store(ctx, u)
	return u, nil
}

func (c *cachedRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if u := c.lookup(ctx, idKey(id)); u != nil {
		return u, nil
	}

	u, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, u)
	return u, nil
}

func (c *cachedRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error) {
	u, err := c.inner.UpdatePassword(ctx, id, passwordHash)
	if err != nil {
		return nil, err
	}

	// Drop both keys, stale hashes must never satisfy a login
	if err := c.rdb.Del(ctx, idKey(u.ID), emailKey(u.Email)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", u.ID.String()).Msg("Failed to invalidate user cache")
	}
	return u, nil
}

func (c *cachedRepo) lookup(ctx context.Context, key string) *User {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return nil
	}

	var rec cacheRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Corrupt cache entry")
		return nil
	}

	u := rec.User
	u.PasswordHash = rec.PasswordHash
	return &u
}

func (c *cachedRepo) store(ctx context.Context, u *User) {
	raw, err := json.Marshal(cacheRecord{User: *u, PasswordHash: u.PasswordHash})
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to marshal cache entry")
		return
	}

	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, idKey(u.ID), raw, c.ttl)
	pipe.Set(ctx, emailKey(u.Email), raw, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn().Err(err).Str("user_id", u.ID.String()).Msg("Cache write failed")
	}
}

func idKey(id uuid.UUID) string { return "user:id:" + id.String() }

func emailKey(email string) string { return "user:email:" + email }
