package persistence

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Alturino/nebula/internal/infra"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/repository"
)

type (
	setupFunc    func(context.Context) (*pgxpool.Pool, *postgres.PostgresContainer, *repository.Queries, *recordingNotifier)
	teardownFunc func(*pgxpool.Pool, *postgres.PostgresContainer)
)

type published struct {
	entity string
	op     notify.Op
	id     string
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []published
}

func (r *recordingNotifier) Publish(_ context.Context, entity string, op notify.Op, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, published{entity: entity, op: op, id: id})
	return nil
}

func (r *recordingNotifier) Changes() []published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]published(nil), r.changes...)
}

func migrations(t *testing.T) []string {
	paths, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	if err != nil {
		t.Fatalf("failed listing migrations with error: %s", err)
	}
	sort.Strings(paths)
	return paths
}

func setup(t *testing.T) setupFunc {
	return func(c context.Context) (*pgxpool.Pool, *postgres.PostgresContainer, *repository.Queries, *recordingNotifier) {
		pgContainer, err := postgres.Run(
			c,
			"postgres:16.6-alpine3.21",
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			postgres.WithDatabase("postgres"),
			postgres.BasicWaitStrategies(),
			postgres.WithInitScripts(migrations(t)...),
		)
		if err != nil {
			t.Fatalf("failed running postgres container with error: %s", err)
		}

		pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
		if err != nil {
			t.Fatalf("failed getting postgres connection string with error: %s", err)
		}

		pgxConfig, err := pgxpool.ParseConfig(pgConnStr)
		if err != nil {
			t.Fatalf("failed parsing postgres config with error: %s", err)
		}
		pgxConfig.AfterConnect = infra.RegisterTypes

		pool, err := pgxpool.NewWithConfig(c, pgxConfig)
		if err != nil {
			t.Fatalf("failed creating postgres pool with error: %s", err)
		}
		if err = pool.Ping(c); err != nil {
			t.Fatalf("failed ping postgres pool with error: %s", err)
		}

		return pool, pgContainer, repository.New(pool), &recordingNotifier{}
	}
}

func teardown(t *testing.T) teardownFunc {
	return func(pool *pgxpool.Pool, pgContainer *postgres.PostgresContainer) {
		pool.Close()
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
}
