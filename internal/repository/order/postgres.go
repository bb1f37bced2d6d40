package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"freshcart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Create persists a new order with paid=false. The line items are stored as
// a jsonb snapshot so later catalog changes never alter past orders.
func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	items := in.LineItems
	if items == nil {
		items = []domain.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}

	const q = `
INSERT INTO orders (line_items, name, email, address, city)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, paid, created_at
`
	res := domain.Order{
		LineItems: items,
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		City:      in.City,
	}
	err = r.pool.QueryRow(ctx, q, raw, in.Name, in.Email, in.Address, in.City).
		Scan(&res.ID, &res.Paid, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("order repo: create email=%s error=%v", in.Email, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s email=%s items=%d", res.ID, res.Email, len(res.LineItems))
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, line_items, name, email, address, city, paid, created_at
FROM orders
WHERE id::text = $1
`
	var (
		o   domain.Order
		raw []byte
	)
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&o.ID, &raw, &o.Name, &o.Email, &o.Address, &o.City, &o.Paid, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("order repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	if err := json.Unmarshal(raw, &o.LineItems); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}
	return &o, nil
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id string) error {
	// id matched as text: the value arrives from webhook metadata and must
	// not fail a uuid cast.
	const q = `UPDATE orders SET paid = TRUE WHERE id::text = $1`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		r.logger.Printf("order repo: mark paid id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("order repo: mark paid id=%s not found", id)
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: marked paid id=%s", id)
	return nil
}
