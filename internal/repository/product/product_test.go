package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"freshcart/internal/domain"
	"freshcart/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_ListAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var aID, bID string
	err := pool.QueryRow(ctx, `
		INSERT INTO products (name, description, picture, price)
		VALUES ('Avocados', 'ripe', '', 10)
		RETURNING id::text
	`).Scan(&aID)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	err = pool.QueryRow(ctx, `
		INSERT INTO products (name, description, picture, price)
		VALUES ('Bread', '', '', 20)
		RETURNING id::text
	`).Scan(&bID)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	repo := NewPostgres(pool, nil)

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}

	byIDs, err := repo.ListByIDs(ctx, []string{aID})
	if err != nil {
		t.Fatalf("ListByIDs: %v", err)
	}
	if len(byIDs) != 1 || byIDs[0].ID != aID || byIDs[0].Price != 10 {
		t.Fatalf("unexpected result %+v", byIDs)
	}

	got, err := repo.GetByID(ctx, bID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Bread" || got.Price != 20 {
		t.Fatalf("unexpected product %+v", got)
	}
}

func TestPostgres_GetMissing(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_ListByIDsEmpty(t *testing.T) {
	repo := NewPostgres(nil, nil)
	got, err := repo.ListByIDs(context.Background(), nil)
	if err != nil || got != nil {
		t.Fatalf("expected nil result for empty ids, got %v %v", got, err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE orders, products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
