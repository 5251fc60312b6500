package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"flashquiz/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DeckLoader loads deck JSONB from Postgres.
type DeckLoader struct {
	pool *pgxpool.Pool
}

func NewDeckLoader(pool *pgxpool.Pool) *DeckLoader {
	return &DeckLoader{pool: pool}
}

func (l *DeckLoader) LoadDeck(ctx context.Context, deckID string) (domain.Deck, error) {
	var (
		title string
		raw   []byte
	)
	err := l.pool.QueryRow(ctx, `SELECT title, cards FROM decks WHERE id=$1`, deckID).Scan(&title, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Deck{}, domain.ErrDeckNotFound
	}
	if err != nil {
		return domain.Deck{}, fmt.Errorf("load deck: %w", err)
	}
	var cards []domain.Flashcard
	if err := json.Unmarshal(raw, &cards); err != nil {
		return domain.Deck{}, fmt.Errorf("unmarshal deck cards: %w", err)
	}
	return domain.Deck{ID: deckID, Title: title, Cards: cards}, nil
}
