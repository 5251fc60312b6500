package tui

import (
	"testing"

	"flashquiz/internal/app"
	"flashquiz/internal/domain"
	"flashquiz/internal/logging"
	"flashquiz/internal/notify"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypingUpdatesDraft(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	typeText(m, "on")
	typeText(m, "e")

	assert.Equal(t, "one", ctrl.Snapshot().Draft)
	assert.Equal(t, "one", m.input.Value())
}

func TestCorrectAnswerAdvancesAndClearsInput(t *testing.T) {
	m, ctrl, board := newTestModel(t)

	typeText(m, " ONE ")
	_, cmd := m.Update(key(tea.KeyEnter))
	assert.NotNil(t, cmd)

	assert.Equal(t, 1, ctrl.Snapshot().CurrentIndex)
	assert.Equal(t, "", m.input.Value())

	toast, ok := board.Current()
	require.True(t, ok)
	assert.Equal(t, domain.FeedbackCorrect, toast.Kind)
	assert.Contains(t, m.View(), "Correct!")
	assert.Contains(t, m.View(), "Question 2 of 2")
	assert.Contains(t, m.View(), "Second?")
}

func TestIncorrectAnswerKeepsInput(t *testing.T) {
	m, ctrl, board := newTestModel(t)

	typeText(m, "uno")
	m.Update(key(tea.KeyEnter))

	assert.Equal(t, 0, ctrl.Snapshot().CurrentIndex)
	assert.Equal(t, "uno", m.input.Value())
	toast, ok := board.Current()
	require.True(t, ok)
	assert.Equal(t, "Incorrect. Try again.", toast.Message)
}

func TestToastDismissal(t *testing.T) {
	m, _, board := newTestModel(t)

	typeText(m, "uno")
	m.Update(key(tea.KeyEnter))
	first, _ := board.Current()

	m.Update(key(tea.KeyEnter))
	second, _ := board.Current()
	require.NotEqual(t, first.ID, second.ID)

	// the first toast's timer fires after it was superseded
	m.Update(dismissToastMsg{id: first.ID})
	assert.Contains(t, m.View(), "Incorrect. Try again.")

	m.Update(dismissToastMsg{id: second.ID})
	assert.NotContains(t, m.View(), "Incorrect. Try again.")
}

func TestCompletionAndRestart(t *testing.T) {
	m, ctrl, board := newTestModel(t)

	typeText(m, "one")
	m.Update(key(tea.KeyEnter))
	typeText(m, "two")
	m.Update(key(tea.KeyEnter))

	require.True(t, ctrl.Snapshot().Complete)
	toast, ok := board.Current()
	require.True(t, ok)
	assert.Equal(t, domain.FeedbackQuizCompleted, toast.Kind)
	assert.Contains(t, m.View(), "Restart Quiz")

	// typing on the completion screen is ignored
	typeText(m, "x")
	assert.Equal(t, "two", ctrl.Snapshot().Draft)

	m.Update(keyRunes("r"))
	snap := ctrl.Snapshot()
	assert.False(t, snap.Complete)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, "", m.input.Value())
	assert.Contains(t, m.View(), "First?")
}

func TestEnterRestartsFromCompletion(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	typeText(m, "one")
	m.Update(key(tea.KeyEnter))
	typeText(m, "two")
	m.Update(key(tea.KeyEnter))

	m.Update(key(tea.KeyEnter))
	assert.False(t, ctrl.Snapshot().Complete)
}

func TestEscQuits(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func newTestModel(t *testing.T) (*Model, *app.Controller, *notify.Board) {
	t.Helper()
	ctrl, err := app.NewController(domain.Deck{
		ID:    "two",
		Title: "Two cards",
		Cards: []domain.Flashcard{
			{Question: "First?", Answer: "one"},
			{Question: "Second?", Answer: "two"},
		},
	})
	require.NoError(t, err)
	board := notify.NewBoard(0)
	return New(ctrl, board, logging.Discard()), ctrl, board
}

func typeText(m *Model, s string) {
	m.Update(keyRunes(s))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestKeyPressPublishesOneDraftUpdate(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	updates, cancel := ctrl.Subscribe()
	defer cancel()
	<-updates

	typeText(m, "o")
	require.Len(t, updates, 1)
	assert.Equal(t, "o", (<-updates).Draft)

	// a key that does not change the text publishes nothing
	m.Update(key(tea.KeyLeft))
	assert.Len(t, updates, 0)
}
