package file

import (
	"context"
	"fmt"
	"os"

	"flashquiz/internal/domain"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk layout of a deck file.
type Document struct {
	Decks []domain.Deck `yaml:"decks"`
}

// DeckLoader reads decks from a YAML file. The file is re-read on every load so
// edits are picked up; wrap it in a caching repository for hot paths.
type DeckLoader struct {
	path string
}

func NewDeckLoader(path string) *DeckLoader {
	return &DeckLoader{path: path}
}

func (l *DeckLoader) LoadDeck(_ context.Context, deckID string) (domain.Deck, error) {
	decks, err := ReadDecks(l.path)
	if err != nil {
		return domain.Deck{}, err
	}
	for _, deck := range decks {
		if deck.ID == deckID {
			return deck, nil
		}
	}
	return domain.Deck{}, domain.ErrDeckNotFound
}

// ReadDecks parses every deck in the file at path.
func ReadDecks(path string) ([]domain.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse deck file %s: %w", path, err)
	}
	for i, deck := range doc.Decks {
		if deck.ID == "" {
			return nil, fmt.Errorf("parse deck file %s: deck %d has no id", path, i)
		}
	}
	return doc.Decks, nil
}
