package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"flashquiz/internal/app"
	"flashquiz/internal/domain"
	"flashquiz/internal/infra/memory"
	pgstore "flashquiz/internal/infra/postgres"
	infraredis "flashquiz/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSampleDeckEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedDecks(t, ctx, pgURL, memory.SampleDeck())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgstore.NewDeckLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()
	deckRepo := infraredis.NewDeckRepository(redisClient, loader, 5*time.Minute)
	service := app.NewQuizService(deckRepo, nil)

	if _, err := service.Start(ctx, "missing"); !errors.Is(err, domain.ErrDeckNotFound) {
		t.Fatalf("expected deck not found, got %v", err)
	}

	var events []domain.Feedback
	ctrl, err := service.Start(ctx, memory.SampleDeckID, app.WithNotifier(app.NotifierFunc(
		func(e domain.Feedback, _ domain.Snapshot) { events = append(events, e) },
	)))
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for _, answer := range []string{"Ford", "suv", "sports utility vehicle", "Miles per gallon", "germany", "BMW", "porsche", "2024"} {
		if err := ctrl.UpdateDraft(answer); err != nil {
			t.Fatalf("draft %q: %v", answer, err)
		}
		if _, err := ctrl.SubmitAnswer(); err != nil {
			t.Fatalf("submit %q: %v", answer, err)
		}
	}

	snap := ctrl.Snapshot()
	if !snap.Complete || snap.CurrentIndex != 6 {
		t.Fatalf("expected completed quiz on last card, got %+v", snap)
	}
	if len(events) != 9 || events[1] != domain.FeedbackIncorrect || events[8] != domain.FeedbackQuizCompleted {
		t.Fatalf("unexpected feedback sequence %v", events)
	}

	// the second session is served from the redis cache in deck order
	again, err := service.Start(ctx, memory.SampleDeckID)
	if err != nil {
		t.Fatalf("start again: %v", err)
	}
	if again.Snapshot().Question != memory.SampleDeck().Cards[0].Question {
		t.Fatalf("expected first card first, got %q", again.Snapshot().Question)
	}
	if n, err := redisClient.LLen(ctx, "deck:cars:cards").Result(); err != nil || n != 7 {
		t.Fatalf("expected 7 cached cards, got %d (%v)", n, err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedDecks(t *testing.T, ctx context.Context, dsn string, decks ...domain.Deck) {
	t.Helper()
	db := pgstore.OpenBun(dsn)
	defer db.Close()

	if _, err := pgstore.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := pgstore.NewSeeder(db).Upsert(ctx, decks...); err != nil {
		t.Fatalf("seed decks: %v", err)
	}
	// re-seeding is an upsert, not a conflict
	if err := pgstore.NewSeeder(db).Upsert(ctx, decks...); err != nil {
		t.Fatalf("re-seed decks: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
