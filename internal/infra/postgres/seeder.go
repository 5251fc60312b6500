package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"flashquiz/internal/domain"
	pgmigrations "flashquiz/internal/infra/postgres/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

type deckRow struct {
	bun.BaseModel `bun:"table:decks"`

	ID        string             `bun:"id,pk"`
	Title     string             `bun:"title"`
	Cards     []domain.Flashcard `bun:"cards,type:jsonb"`
	UpdatedAt time.Time          `bun:"updated_at"`
}

// OpenBun opens a bun handle over the pgdriver connector.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies all registered migrations and returns the applied group, if any.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

// Seeder upserts decks into the decks table.
type Seeder struct {
	db  *bun.DB
	now func() time.Time
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db, now: time.Now}
}

// Upsert inserts or replaces decks by id. Decks without cards are rejected.
func (s *Seeder) Upsert(ctx context.Context, decks ...domain.Deck) error {
	if len(decks) == 0 {
		return nil
	}
	rows := make([]deckRow, 0, len(decks))
	for _, d := range decks {
		if len(d.Cards) == 0 {
			return fmt.Errorf("seed deck %q: %w", d.ID, domain.ErrEmptyDeck)
		}
		rows = append(rows, deckRow{ID: d.ID, Title: d.Title, Cards: d.Cards, UpdatedAt: s.now()})
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("cards = EXCLUDED.cards").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("seed decks: %w", err)
	}
	return nil
}
