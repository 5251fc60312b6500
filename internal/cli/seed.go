package cli

import (
	"context"
	"fmt"
	"os"

	"flashquiz/internal/config"
	"flashquiz/internal/domain"
	"flashquiz/internal/infra/file"
	"flashquiz/internal/infra/memory"
	pgstore "flashquiz/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads decks into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var deckFile string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert decks into Postgres (the built-in deck when no file is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, deckFile)
		},
	}
	cmd.Flags().StringVar(&deckFile, "file", "", "YAML file with decks")
	return cmd
}

func runSeed(ctx context.Context, configPath, deckFile string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closeLog()

	if deckFile == "" {
		deckFile = cfg.Deck.File
	}
	decks := []domain.Deck{memory.SampleDeck()}
	if deckFile != "" {
		decks, err = file.ReadDecks(deckFile)
		if err != nil {
			return err
		}
	}

	if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
		return err
	}
	db := pgstore.OpenBun(cfg.Postgres.URL)
	defer db.Close()

	if err := pgstore.NewSeeder(db).Upsert(ctx, decks...); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := invalidateCachedDecks(ctx, cfg, logger, decks); err != nil {
		return err
	}
	logger.Info("decks seeded", "count", len(decks))
	return nil
}
