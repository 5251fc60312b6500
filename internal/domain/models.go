package domain

// Flashcard is a single question with its expected answer.
type Flashcard struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Deck is an ordered collection of flashcards.
type Deck struct {
	ID    string      `json:"id" yaml:"id"`
	Title string      `json:"title" yaml:"title"`
	Cards []Flashcard `json:"cards" yaml:"cards"`
}

// Snapshot is a read-only view of a quiz session for presentation.
// It never carries the answer of the current card.
type Snapshot struct {
	DeckID       string `json:"deckId"`
	DeckTitle    string `json:"deckTitle,omitempty"`
	Question     string `json:"question"`
	CurrentIndex int    `json:"currentIndex"`
	Total        int    `json:"total"`
	Draft        string `json:"draft"`
	Complete     bool   `json:"complete"`
}

// Position is the 1-based card number, handy for "Question 3 of 7".
func (s Snapshot) Position() int {
	return s.CurrentIndex + 1
}

// Feedback is an advisory signal raised by an answer submission.
type Feedback string

const (
	FeedbackCorrect       Feedback = "correct"
	FeedbackIncorrect     Feedback = "incorrect"
	FeedbackQuizCompleted Feedback = "quizCompleted"
)

// Message is the user-facing notification text.
func (f Feedback) Message() string {
	switch f {
	case FeedbackCorrect:
		return "Correct!"
	case FeedbackIncorrect:
		return "Incorrect. Try again."
	case FeedbackQuizCompleted:
		return "Quiz Complete!"
	default:
		return string(f)
	}
}

// SubmitResult summarizes the outcome of a single answer submission.
type SubmitResult struct {
	Correct   bool       `json:"correct"`
	Completed bool       `json:"completed"`
	Events    []Feedback `json:"events"`
	Snapshot  Snapshot   `json:"snapshot"`
}
