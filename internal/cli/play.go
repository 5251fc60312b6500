package cli

import (
	"context"
	"fmt"
	"os"

	"flashquiz/internal/app"
	"flashquiz/internal/config"
	"flashquiz/internal/logging"
	"flashquiz/internal/notify"
	"flashquiz/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewPlayCmd runs a quiz session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		deck     string
		deckFile string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if deckFile != "" {
				cfg.Deck.File = deckFile
				// an explicit file wins over a configured database
				cfg.Postgres.URL = ""
			}
			return runPlay(cmd.Context(), cfg, deck)
		},
	}
	cmd.Flags().StringVar(&deck, "deck", "", "deck id to play (defaults to deck.id or the built-in deck)")
	cmd.Flags().StringVar(&deckFile, "deck-file", "", "YAML file with decks")
	return cmd
}

func runPlay(ctx context.Context, cfg config.Config, deckFlag string) error {
	// stdout belongs to the terminal UI; only log when a file is configured
	logger := logging.Discard()
	if cfg.Log.File != "" {
		l, closeLog, err := newLogger(cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer closeLog()
		logger = l
	}

	src, err := buildDeckSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	service := app.NewQuizService(src.repo, logger)
	ctrl, err := service.Start(ctx, deckID(cfg, deckFlag), app.WithNotifier(app.NewLogNotifier(logger)))
	if err != nil {
		return err
	}

	board := notify.NewBoard(config.TTLDuration(cfg.Notify.Duration, notify.DefaultDuration))
	p := tea.NewProgram(tui.New(ctrl, board, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run quiz ui: %w", err)
	}
	return nil
}
