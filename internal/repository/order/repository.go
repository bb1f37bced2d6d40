package order

import (
	"context"

	"freshcart/internal/domain"
)

// CreateOrderInput carries everything needed to persist a new unpaid order.
type CreateOrderInput struct {
	LineItems []domain.LineItem
	Name      string
	Email     string
	Address   string
	City      string
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	MarkPaid(ctx context.Context, id string) error
}
