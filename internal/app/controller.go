package app

import (
	"strings"
	"sync"

	"flashquiz/internal/domain"
)

// Notifier receives feedback events after the controller has applied a state transition.
type Notifier interface {
	Notify(event domain.Feedback, snapshot domain.Snapshot)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(event domain.Feedback, snapshot domain.Snapshot)

func (f NotifierFunc) Notify(event domain.Feedback, snapshot domain.Snapshot) {
	f(event, snapshot)
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier registers a feedback listener. Several may be registered.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifiers = append(c.notifiers, n)
		}
	}
}

// Controller owns a single quiz session over a fixed deck and enforces its progression rules.
type Controller struct {
	deck      domain.Deck
	notifiers []Notifier

	mu          sync.Mutex
	index       int
	draft       string
	complete    bool
	subscribers map[chan domain.Snapshot]struct{}
}

// NewController starts a session at the first card. The card list is copied so
// later changes to the caller's slice never leak into the session.
func NewController(deck domain.Deck, opts ...Option) (*Controller, error) {
	if len(deck.Cards) == 0 {
		return nil, domain.ErrEmptyDeck
	}
	cards := make([]domain.Flashcard, len(deck.Cards))
	copy(cards, deck.Cards)
	deck.Cards = cards

	c := &Controller{
		deck:        deck,
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// UpdateDraft replaces the in-progress answer text.
func (c *Controller) UpdateDraft(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.complete {
		return domain.ErrQuizComplete
	}
	c.draft = text
	c.broadcastLocked()
	return nil
}

// SubmitAnswer checks the draft against the current card. A wrong answer leaves
// the session untouched so the user can correct the typed text.
func (c *Controller) SubmitAnswer() (domain.SubmitResult, error) {
	c.mu.Lock()
	if c.complete {
		c.mu.Unlock()
		return domain.SubmitResult{}, domain.ErrQuizComplete
	}

	var result domain.SubmitResult
	if normalize(c.draft) == normalize(c.deck.Cards[c.index].Answer) {
		result.Correct = true
		result.Events = append(result.Events, domain.FeedbackCorrect)
		if c.index == len(c.deck.Cards)-1 {
			c.complete = true
			result.Completed = true
			result.Events = append(result.Events, domain.FeedbackQuizCompleted)
		} else {
			c.index++
			c.draft = ""
		}
	} else {
		result.Events = append(result.Events, domain.FeedbackIncorrect)
	}
	result.Snapshot = c.broadcastLocked()
	c.mu.Unlock()

	c.notify(result.Events, result.Snapshot)
	return result, nil
}

// Restart returns the session to the first card with an empty draft.
func (c *Controller) Restart() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
	c.draft = ""
	c.complete = false
	return c.broadcastLocked()
}

// Subscribe returns a channel that receives the current snapshot immediately and
// a new one after every operation. The caller must invoke cancel to avoid leaks.
func (c *Controller) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	ch <- c.snapshotLocked()
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

func (c *Controller) notify(events []domain.Feedback, snapshot domain.Snapshot) {
	for _, event := range events {
		for _, n := range c.notifiers {
			n.Notify(event, snapshot)
		}
	}
}

func (c *Controller) broadcastLocked() domain.Snapshot {
	snap := c.snapshotLocked()
	for ch := range c.subscribers {
		select {
		case ch <- snap:
		default:
			// drop the oldest pending snapshot; only the latest state matters
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (c *Controller) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		DeckID:       c.deck.ID,
		DeckTitle:    c.deck.Title,
		Question:     c.deck.Cards[c.index].Question,
		CurrentIndex: c.index,
		Total:        len(c.deck.Cards),
		Draft:        c.draft,
		Complete:     c.complete,
	}
}

// normalize makes comparisons case- and surrounding-whitespace-insensitive.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
