package memory

import (
	"context"
	"sync"
	"time"

	"flashquiz/internal/domain"
	"flashquiz/internal/infra/cachettl"
	"golang.org/x/sync/singleflight"
)

// DeckLoader fetches deck content from a backing store (file, Postgres, ...).
type DeckLoader interface {
	LoadDeck(ctx context.Context, deckID string) (domain.Deck, error)
}

// DeckRepository keeps loaded decks in process memory. Concurrent misses for the
// same deck share one load. A zero TTL turns caching off entirely.
type DeckRepository struct {
	loader DeckLoader
	ttl    *cachettl.Jitter
	clock  func() time.Time
	loads  singleflight.Group

	mu    sync.RWMutex
	decks map[string]deckEntry
}

type deckEntry struct {
	deck    domain.Deck
	staleAt time.Time
}

func (e deckEntry) fresh(now time.Time) bool {
	return now.Before(e.staleAt)
}

func NewDeckRepository(loader DeckLoader, ttl time.Duration) *DeckRepository {
	return &DeckRepository{
		loader: loader,
		ttl:    cachettl.NewJitter(ttl),
		clock:  time.Now,
		decks:  make(map[string]deckEntry),
	}
}

func (r *DeckRepository) GetDeck(ctx context.Context, deckID string) (domain.Deck, error) {
	if deck, ok := r.lookup(deckID); ok {
		return deck, nil
	}
	v, err, _ := r.loads.Do(deckID, func() (interface{}, error) {
		// a concurrent load may have landed while we waited for the group
		if deck, ok := r.lookup(deckID); ok {
			return deck, nil
		}
		deck, err := r.loader.LoadDeck(ctx, deckID)
		if err != nil {
			return nil, err
		}
		r.remember(deckID, deck)
		return deck, nil
	})
	if err != nil {
		return domain.Deck{}, err
	}
	return v.(domain.Deck), nil
}

func (r *DeckRepository) lookup(deckID string) (domain.Deck, bool) {
	r.mu.RLock()
	entry, ok := r.decks[deckID]
	r.mu.RUnlock()
	if !ok || !entry.fresh(r.clock()) {
		return domain.Deck{}, false
	}
	return entry.deck, true
}

func (r *DeckRepository) remember(deckID string, deck domain.Deck) {
	ttl := r.ttl.Next()
	if ttl <= 0 {
		return
	}
	r.mu.Lock()
	r.decks[deckID] = deckEntry{deck: deck, staleAt: r.clock().Add(ttl)}
	r.mu.Unlock()
}
