package domain

import "errors"

var (
	// ErrEmptyDeck is returned when a quiz is built from a deck with no cards.
	ErrEmptyDeck = errors.New("deck has no cards")
	// ErrQuizComplete is returned when answers or drafts arrive after the last card was answered.
	ErrQuizComplete = errors.New("quiz is already complete")
	// ErrDeckNotFound indicates the deck could not be loaded.
	ErrDeckNotFound = errors.New("deck not found")
)
