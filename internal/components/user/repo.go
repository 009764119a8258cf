package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quytt2702/authapi/internal/shared/apperr"
	"github.com/quytt2702/authapi/internal/shared/config"
)

type (
	// Repository is the identity store used by the auth component.
	Repository interface {
		GetByEmail(ctx context.Context, email string) (*User, error)
		GetByID(ctx context.Context, id uuid.UUID) (*User, error)
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error)
	}

	repo struct {
		pool *pgxpool.Pool
	}
)

// NewRepository assembles the Postgres repository behind the Redis
// read-through decorator. This is the constructor the app wires.
func NewRepository(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, logger zerolog.Logger) Repository {
	return NewCachedRepo(NewRepo(pool), rdb, cfg.UserCacheTTL, logger)
}

// NewRepo creates the plain Postgres-backed repository.
func NewRepo(pool *pgxpool.Pool) Repository {
	return &repo{pool: pool}
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	stmt := `
	SELECT id, email, name, password_hash, created_at, updated_at
	FROM users
	WHERE email = $1`

	return r.scanOne(r.pool.QueryRow(ctx, stmt, email))
}

func (r *repo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	stmt := `
	SELECT id, email, name, password_hash, created_at, updated_at
	FROM users
	WHERE id = $1`

	return r.scanOne(r.pool.QueryRow(ctx, stmt, id))
}

// UpdatePassword swaps the stored hash in a single statement so concurrent
// readers never observe a partial update.
func (r *repo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error) {
	stmt := `
	UPDATE users
	SET password_hash = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING id, email, name, password_hash, created_at, updated_at`

	return r.scanOne(r.pool.QueryRow(ctx, stmt, id, passwordHash))
}

func (r *repo) scanOne(row pgx.Row) (*User, error) {
	u := new(User)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}
