package app

import (
	"context"
	"fmt"
	"log/slog"

	"flashquiz/internal/domain"
)

// DeckRepository loads decks (from cache/backing store).
type DeckRepository interface {
	GetDeck(ctx context.Context, deckID string) (domain.Deck, error)
}

// QuizService starts independent quiz sessions over decks from a repository.
type QuizService struct {
	decks  DeckRepository
	logger *slog.Logger
}

func NewQuizService(decks DeckRepository, logger *slog.Logger) *QuizService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizService{decks: decks, logger: logger}
}

// Start loads the deck and returns a fresh controller positioned at its first card.
func (s *QuizService) Start(ctx context.Context, deckID string, opts ...Option) (*Controller, error) {
	deck, err := s.decks.GetDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("load deck %q: %w", deckID, err)
	}
	ctrl, err := NewController(deck, opts...)
	if err != nil {
		return nil, fmt.Errorf("start deck %q: %w", deckID, err)
	}
	s.logger.Debug("quiz session started", "deck_id", deck.ID, "cards", len(deck.Cards))
	return ctrl, nil
}

// NewLogNotifier logs every feedback event.
func NewLogNotifier(logger *slog.Logger) Notifier {
	return NotifierFunc(func(event domain.Feedback, snap domain.Snapshot) {
		logger.Info("answer feedback",
			"deck_id", snap.DeckID,
			"event", string(event),
			"index", snap.CurrentIndex,
			"complete", snap.Complete,
		)
	})
}
