package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flashquiz/internal/domain"
)

const sampleYAML = `
decks:
  - id: capitals
    title: Capitals
    cards:
      - question: Capital of France?
        answer: Paris
      - question: Capital of Japan?
        answer: Tokyo
  - id: empty
    title: Nothing here
`

func TestDeckLoaderReadsDeck(t *testing.T) {
	path := writeFile(t, sampleYAML)
	loader := NewDeckLoader(path)

	deck, err := loader.LoadDeck(context.Background(), "capitals")
	if err != nil {
		t.Fatalf("load deck: %v", err)
	}
	if deck.Title != "Capitals" || len(deck.Cards) != 2 {
		t.Fatalf("unexpected deck %+v", deck)
	}
	if deck.Cards[1] != (domain.Flashcard{Question: "Capital of Japan?", Answer: "Tokyo"}) {
		t.Fatalf("cards out of order: %+v", deck.Cards)
	}
}

func TestDeckLoaderUnknownDeck(t *testing.T) {
	loader := NewDeckLoader(writeFile(t, sampleYAML))

	_, err := loader.LoadDeck(context.Background(), "history")
	if !errors.Is(err, domain.ErrDeckNotFound) {
		t.Fatalf("expected deck not found, got %v", err)
	}
}

func TestReadDecksRejectsMissingID(t *testing.T) {
	path := writeFile(t, "decks:\n  - title: anonymous\n")

	if _, err := ReadDecks(path); err == nil {
		t.Fatalf("expected error for deck without id")
	}
}

func TestReadDecksMissingFile(t *testing.T) {
	_, err := ReadDecks(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write deck file: %v", err)
	}
	return path
}
