package user

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quytt2702/authapi/internal/shared/apperr"
)

// countingRepo tracks how often the inner store is hit.
type countingRepo struct {
	users       map[uuid.UUID]*User
	emailCalls  int
	idCalls     int
	updateCalls int
}

func newCountingRepo() *countingRepo {
	return &countingRepo{users: make(map[uuid.UUID]*User)}
}

func (r *countingRepo) add(email string) *User {
	u := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         email,
		PasswordHash: "$2a$04$somethinghashed",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	r.users[u.ID] = u
	return u
}

func (r *countingRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	r.emailCalls++
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *countingRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.idCalls++
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *countingRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) (*User, error) {
	r.updateCalls++
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	u.PasswordHash = passwordHash
	copied := *u
	return &copied, nil
}

func newCacheFixture(t *testing.T) (Repository, *countingRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inner := newCountingRepo()
	return NewCachedRepo(inner, rdb, 5*time.Minute, zerolog.Nop()), inner
}

func TestCachedRepoReadThrough(t *testing.T) {
	cached, inner := newCacheFixture(t)
	u := inner.add("a@b.com")

	first, err := cached.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	second, err := cached.GetByID(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.idCalls)
	assert.Equal(t, first.Email, second.Email)
	// the hash must survive the cache round trip, logins depend on it
	assert.Equal(t, u.PasswordHash, second.PasswordHash)
}

func TestCachedRepoPopulatesBothKeys(t *testing.T) {
	cached, inner := newCacheFixture(t)
	u := inner.add("a@b.com")

	_, err := cached.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)

	_, err = cached.GetByID(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.emailCalls)
	assert.Equal(t, 0, inner.idCalls)
}

func TestCachedRepoUpdateInvalidates(t *testing.T) {
	cached, inner := newCacheFixture(t)
	u := inner.add("a@b.com")

	_, err := cached.GetByID(context.Background(), u.ID)
	require.NoError(t, err)

	_, err = cached.UpdatePassword(context.Background(), u.ID, "$2a$04$newhash")
	require.NoError(t, err)

	got, err := cached.GetByID(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.idCalls)
	assert.Equal(t, "$2a$04$newhash", got.PasswordHash)
}

func TestCachedRepoMissPropagatesNotFound(t *testing.T) {
	cached, _ := newCacheFixture(t)

	_, err := cached.GetByEmail(context.Background(), "ghost@b.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCachedRepoSurvivesRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inner := newCountingRepo()
	cached := NewCachedRepo(inner, rdb, 5*time.Minute, zerolog.Nop())

	u := inner.add("a@b.com")
	mr.Close()

	got, err := cached.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
}
