package memory

import (
	"context"

	"flashquiz/internal/domain"
)

// SampleDeckID identifies the built-in deck used when nothing else is configured.
const SampleDeckID = "cars"

// StaticDeckLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticDeckLoader struct {
	decks map[string]domain.Deck
}

func NewStaticDeckLoader(decks ...domain.Deck) *StaticDeckLoader {
	l := &StaticDeckLoader{decks: make(map[string]domain.Deck, len(decks))}
	for _, d := range decks {
		l.decks[d.ID] = d
	}
	return l
}

func (l *StaticDeckLoader) LoadDeck(_ context.Context, deckID string) (domain.Deck, error) {
	if deck, ok := l.decks[deckID]; ok {
		return deck, nil
	}
	return domain.Deck{}, domain.ErrDeckNotFound
}

// SampleDeck returns the built-in seven card deck.
func SampleDeck() domain.Deck {
	return domain.Deck{
		ID:    SampleDeckID,
		Title: "Cars & Gadgets",
		Cards: []domain.Flashcard{
			{Question: "Which car company produces the “Mustang” model?", Answer: "Ford"},
			{Question: "What does the acronym “SUV” stand for?", Answer: "Sports utility Vehicle"},
			{Question: "What does MPG mean in terms of fuel?", Answer: "Miles per gallon"},
			{Question: "Which country is home to the automaker BMW", Answer: "Germany"},
			{Question: "What car brand uses the slogan “The Ultimate Driving Machine”?", Answer: "BMW"},
			{Question: "Which car company produces the “911” sports car model?", Answer: "Porsche"},
			{Question: "In what year did the iPhone 16 pro release?", Answer: "2024"},
		},
	}
}
