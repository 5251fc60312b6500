// Package tui is the terminal presentation of a quiz session.
//
// The model never decides correctness itself: key presses are forwarded to the
// app.Controller and the screen is re-rendered from its snapshot. Feedback is
// surfaced as transient toasts that dismiss themselves after a short delay.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flashquiz/internal/app"
	"flashquiz/internal/domain"
	"flashquiz/internal/notify"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dismissToastMsg fires when a toast's display time is over.
type dismissToastMsg struct {
	id uint64
}

// Model is the Bubble Tea model for a single quiz session.
type Model struct {
	ctrl   *app.Controller
	board  *notify.Board
	input  textinput.Model
	logger *slog.Logger
	width  int
}

// Ensure Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

func New(ctrl *app.Controller, board *notify.Board, logger *slog.Logger) *Model {
	if board == nil {
		board = notify.NewBoard(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "type your answer"
	ti.Width = 50
	ti.SetValue(ctrl.Snapshot().Draft)
	ti.Focus()
	return &Model{ctrl: ctrl, board: board, input: ti, logger: logger}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case dismissToastMsg:
		m.board.Dismiss(msg.id)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if snap.Complete {
				return m, m.restart()
			}
			return m, m.submit()
		}
		if snap.Complete {
			switch msg.String() {
			case "r":
				return m, m.restart()
			case "q":
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if snap.Complete {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != snap.Draft {
		if err := m.ctrl.UpdateDraft(value); err != nil {
			m.logger.Warn("update draft rejected", "error", err)
		}
	}
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	res, err := m.ctrl.SubmitAnswer()
	if err != nil {
		m.logger.Warn("submit rejected", "error", err)
		return nil
	}
	m.input.SetValue(res.Snapshot.Draft)
	m.input.CursorEnd()
	if res.Completed {
		m.input.Blur()
	}

	cmds := make([]tea.Cmd, 0, len(res.Events))
	for _, event := range res.Events {
		cmds = append(cmds, m.showToast(event))
	}
	return tea.Batch(cmds...)
}

func (m *Model) restart() tea.Cmd {
	snap := m.ctrl.Restart()
	m.input.SetValue(snap.Draft)
	return m.input.Focus()
}

func (m *Model) showToast(event domain.Feedback) tea.Cmd {
	toast := m.board.Show(event)
	return tea.Tick(m.board.Duration(), func(time.Time) tea.Msg {
		return dismissToastMsg{id: toast.ID}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.ctrl.Snapshot()

	var body string
	if snap.Complete {
		body = m.completeView()
	} else {
		body = m.quizView(snap)
	}
	if toast, ok := m.board.Current(); ok {
		style := Styles.ToastOK
		if toast.Kind == domain.FeedbackIncorrect {
			style = Styles.ToastBad
		}
		body += "\n\n" + style.Render(toast.Message)
	}
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}
	return body
}

func (m *Model) quizView(snap domain.Snapshot) string {
	var b strings.Builder
	if snap.DeckTitle != "" {
		b.WriteString(Styles.Title.Render(snap.DeckTitle) + "\n")
	}
	b.WriteString(Styles.Progress.Render(fmt.Sprintf("Question %d of %d", snap.Position(), snap.Total)) + "\n\n")
	b.WriteString(Styles.Card.Render(snap.Question) + "\n\n")
	b.WriteString(Styles.Label.Render("You must know the Answer!") + "\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(Styles.Button.Render("Submit Answer") + "\n\n")
	b.WriteString(Styles.Hint.Render("Enter: submit  Esc: quit"))
	return b.String()
}

func (m *Model) completeView() string {
	var b strings.Builder
	b.WriteString(Styles.Headline.Render("Quiz Complete!") + "\n\n")
	b.WriteString(Styles.Button.Render("Restart Quiz") + "\n\n")
	b.WriteString(Styles.Hint.Render("Enter/r: restart  q/Esc: quit"))
	return b.String()
}
