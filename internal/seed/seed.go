package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Picture     string
	Price       int64
}

// Apply inserts basic catalog data for manual testing. It is idempotent:
// products are matched by name.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Fresh Avocados",
			Description: "Ripe Hass avocados, pack of 4",
			Picture:     "https://images.freshcart.dev/avocados.jpg",
			Price:       10,
		},
		{
			Name:        "Sourdough Bread",
			Description: "Stone-baked sourdough loaf",
			Picture:     "https://images.freshcart.dev/sourdough.jpg",
			Price:       7,
		},
		{
			Name:        "Orange Juice",
			Description: "Cold-pressed, 1 liter",
			Picture:     "https://images.freshcart.dev/orange-juice.jpg",
			Price:       5,
		},
		{
			Name:        "Free-Range Eggs",
			Description: "Dozen large free-range eggs",
			Picture:     "https://images.freshcart.dev/eggs.jpg",
			Price:       6,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, picture, price)
SELECT $1, $2, $3, $4
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Picture, p.Price)
	return err
}
