package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/comments/internal/config"
	"github.com/MrSnakeDoc/comments/internal/events"
	"github.com/MrSnakeDoc/comments/internal/logger"
	"github.com/MrSnakeDoc/comments/internal/redis"
	"github.com/MrSnakeDoc/comments/internal/store"
	"github.com/MrSnakeDoc/comments/internal/store/memory"
	"github.com/MrSnakeDoc/comments/internal/store/postgres"
	redisstore "github.com/MrSnakeDoc/comments/internal/store/redis"
)

// openStore connects the backend selected by cfg.StoreBackend.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Client, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("using the in-memory store, comments are lost on restart")
		return memory.NewStore(), nil

	case config.BackendRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(ctx, redis.OptionsFromConfig(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisstore.NewStore(client), nil

	case config.BackendPostgres:
		log.Info("Connecting to Postgres")
		st, err := postgres.New(cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return st, nil
	}

	return nil, fmt.Errorf("%w: %q", store.ErrUnknownBackend, cfg.StoreBackend)
}

// openPublisher returns a NATS publisher when a URL is configured, a noop
// publisher otherwise.
func openPublisher(cfg *config.Config, log logger.Logger) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		log.Info("NATS not configured, comment events disabled")
		return &events.NoopPublisher{}, nil
	}

	pub, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	log.Info("publishing comment events", logger.String("topic", events.TopicCommentCreated))
	return pub, nil
}
