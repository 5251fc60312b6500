package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"flashquiz/internal/domain"
	"flashquiz/internal/infra/cachettl"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// DeckLoader fetches deck content from a backing store (e.g., Postgres or a file).
type DeckLoader interface {
	LoadDeck(ctx context.Context, deckID string) (domain.Deck, error)
}

// DeckRepository caches decks in Redis and falls back to a loader on cache miss.
// Title is stored as: HSET deck:{ns}:{deckID}:meta title {title}
// Cards are stored as: RPUSH deck:{ns}:{deckID}:cards {card JSON} ... (in deck order)
// The namespace names the deck source, so decks from different sources never share keys.
type DeckRepository struct {
	client    *redis.Client
	loader    DeckLoader
	ttl       *cachettl.Jitter
	namespace string
	logger    *slog.Logger
	sf        singleflight.Group
}

// Option configures a DeckRepository.
type Option func(*DeckRepository)

// WithNamespace keys the cache by deck source (e.g. "postgres", "file:decks.yaml").
func WithNamespace(ns string) Option {
	return func(r *DeckRepository) { r.namespace = ns }
}

// WithLogger sets the logger used for non-fatal cache failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *DeckRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewDeckRepository(client *redis.Client, loader DeckLoader, ttl time.Duration, opts ...Option) *DeckRepository {
	r := &DeckRepository{
		client: client,
		loader: loader,
		ttl:    cachettl.NewJitter(ttl),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *DeckRepository) GetDeck(ctx context.Context, deckID string) (domain.Deck, error) {
	if deck, ok := r.fromCache(ctx, deckID); ok {
		return deck, nil
	}

	result, err, _ := r.sf.Do(deckID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if deck, ok := r.fromCache(ctx, deckID); ok {
			return deck, nil
		}

		deck, err := r.loader.LoadDeck(ctx, deckID)
		if err != nil {
			return domain.Deck{}, err
		}
		if err := r.store(ctx, deckID, deck); err != nil {
			return domain.Deck{}, err
		}
		return deck, nil
	})
	if err != nil {
		return domain.Deck{}, err
	}
	return result.(domain.Deck), nil
}

// Invalidate drops the cached copy of a deck so the next read goes to the loader.
func (r *DeckRepository) Invalidate(ctx context.Context, deckID string) error {
	return r.client.Del(ctx, r.metaKey(deckID), r.cardsKey(deckID)).Err()
}

func (r *DeckRepository) fromCache(ctx context.Context, deckID string) (domain.Deck, bool) {
	raw, err := r.client.LRange(ctx, r.cardsKey(deckID), 0, -1).Result()
	if err != nil || len(raw) == 0 {
		return domain.Deck{}, false
	}
	cards := make([]domain.Flashcard, 0, len(raw))
	for _, item := range raw {
		var card domain.Flashcard
		if err := json.Unmarshal([]byte(item), &card); err != nil {
			// corrupted entry, treat as a miss and let the loader refill it
			return domain.Deck{}, false
		}
		cards = append(cards, card)
	}
	title, _ := r.client.HGet(ctx, r.metaKey(deckID), "title").Result()
	return domain.Deck{ID: deckID, Title: title, Cards: cards}, true
}

func (r *DeckRepository) store(ctx context.Context, deckID string, deck domain.Deck) error {
	if len(deck.Cards) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		data, err := json.Marshal(card)
		if err != nil {
			return fmt.Errorf("marshal card: %w", err)
		}
		values = append(values, string(data))
	}

	cardsKey := r.cardsKey(deckID)
	metaKey := r.metaKey(deckID)
	ttl := r.ttl.Next()

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, cardsKey)
	pipe.RPush(ctx, cardsKey, values...)
	pipe.HSet(ctx, metaKey, "title", deck.Title)
	if ttl > 0 {
		pipe.Expire(ctx, cardsKey, ttl)
		pipe.Expire(ctx, metaKey, ttl)
	}
	// cache write failures are not fatal, the deck was loaded
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("deck cache write failed", "deck_id", deckID, "namespace", r.namespace, "error", err)
	}
	return nil
}

func (r *DeckRepository) cardsKey(deckID string) string {
	return r.keyPrefix(deckID) + ":cards"
}

func (r *DeckRepository) metaKey(deckID string) string {
	return r.keyPrefix(deckID) + ":meta"
}

func (r *DeckRepository) keyPrefix(deckID string) string {
	if r.namespace == "" {
		return "deck:" + deckID
	}
	return "deck:" + r.namespace + ":" + deckID
}
