package product

import (
	"context"

	"freshcart/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
