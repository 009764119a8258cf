package cache

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quytt2702/authapi/internal/shared/config"
)

// NewRedisClient creates the Redis client backing the repository cache and
// the token denylist.
func NewRedisClient(cfg *config.Config, logger zerolog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse Redis URL")
		return nil, err
	}

	client := redis.NewClient(opts)

	logger.Debug().Str("addr", opts.Addr).Int("db", opts.DB).Msg("Redis client created")
	return client, nil
}
