package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"flashquiz/internal/app"
	"flashquiz/internal/config"
	"flashquiz/internal/domain"
	"flashquiz/internal/infra/file"
	"flashquiz/internal/infra/memory"
	pgloader "flashquiz/internal/infra/postgres"
	redisdeck "flashquiz/internal/infra/redis"
	"flashquiz/internal/logging"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// loadConfig reads the config file. A missing file yields defaults so the quiz
// runs out of the box with the built-in deck.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// newLogger builds the logger from config, writing to w unless log.file is set.
func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, func(), error) {
	if cfg.Log.File == "" {
		return logging.New(w, cfg.Log.Level, cfg.Log.Format), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, cfg.Log.Level, cfg.Log.Format), func() { _ = f.Close() }, nil
}

// deckSource is the assembled deck repository and the resources backing it.
type deckSource struct {
	repo    app.DeckRepository
	closers []func()
}

func (d *deckSource) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// buildDeckSource picks the loader (Postgres, YAML file or built-in sample) and
// puts the Redis or in-memory cache in front of it.
func buildDeckSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (*deckSource, error) {
	src := &deckSource{}

	var loader memory.DeckLoader = memory.NewStaticDeckLoader(memory.SampleDeck())
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		src.closers = append(src.closers, pool.Close)
		loader = pgloader.NewDeckLoader(pool)
		logger.Debug("decks from postgres")
	case cfg.Deck.File != "":
		loader = file.NewDeckLoader(cfg.Deck.File)
		logger.Debug("decks from file", "path", cfg.Deck.File)
	}

	deckTTL := config.TTLDuration(cfg.Deck.TTL, 10*time.Minute)
	if cfg.Redis.Addr != "" {
		client := newRedisClient(cfg)
		src.closers = append(src.closers, func() { _ = client.Close() })
		ns := deckCacheNamespace(cfg)
		src.repo = redisdeck.NewDeckRepository(client, loader, config.TTLDuration(cfg.Redis.TTL, deckTTL),
			redisdeck.WithNamespace(ns),
			redisdeck.WithLogger(logger),
		)
		logger.Debug("deck cache in redis", "addr", cfg.Redis.Addr, "namespace", ns)
	} else {
		src.repo = memory.NewDeckRepository(loader, deckTTL)
	}
	return src, nil
}

func newRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// deckCacheNamespace keys cached decks by the loader that produced them, so a
// deck file and the database can share one Redis without serving each other's
// decks under the same id.
func deckCacheNamespace(cfg config.Config) string {
	switch {
	case cfg.Postgres.URL != "":
		return "postgres"
	case cfg.Deck.File != "":
		return "file:" + cfg.Deck.File
	default:
		return "sample"
	}
}

// invalidateCachedDecks drops the Redis copies of decks just written to
// Postgres. It does nothing when no Redis is configured.
func invalidateCachedDecks(ctx context.Context, cfg config.Config, logger *slog.Logger, decks []domain.Deck) error {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client := newRedisClient(cfg)
	defer client.Close()

	cache := redisdeck.NewDeckRepository(client, nil, 0,
		redisdeck.WithNamespace("postgres"),
		redisdeck.WithLogger(logger),
	)
	for _, deck := range decks {
		if err := cache.Invalidate(ctx, deck.ID); err != nil {
			return fmt.Errorf("invalidate cached deck %s: %w", deck.ID, err)
		}
	}
	logger.Debug("cached decks invalidated", "count", len(decks))
	return nil
}

func deckID(cfg config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	if cfg.Deck.ID != "" {
		return cfg.Deck.ID
	}
	return memory.SampleDeckID
}
