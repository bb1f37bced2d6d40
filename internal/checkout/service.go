package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"

	"freshcart/internal/cart"
	"freshcart/internal/domain"
	"freshcart/internal/payment"
	orderrepo "freshcart/internal/repository/order"
)

var (
	// ErrMissingFields signals an empty required contact/address field.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidEmail signals an email that fails the address pattern.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrUnknownProduct signals a submitted identifier absent from the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrPaymentProvider wraps failures creating the hosted payment session.
	ErrPaymentProvider = errors.New("payment provider")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

type productRepo interface {
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
}

type eventPublisher interface {
	OrderCreated(ctx context.Context, o domain.Order)
}

// Service builds checkout sessions: it validates the submission, resolves
// products, persists an unpaid order and asks the payment provider for a
// hosted session.
type Service struct {
	products productRepo
	orders   orderRepo
	sessions payment.SessionCreator
	events   eventPublisher
	logger   *log.Logger
}

func New(products productRepo, orders orderRepo, sessions payment.SessionCreator, events eventPublisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		products: products,
		orders:   orders,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

// Input is one checkout submission. Products is the comma-separated
// identifier list where repeats encode quantity; Origin is the requesting
// site's origin, used to derive the success/cancel redirect URLs.
type Input struct {
	Email    string
	Name     string
	Address  string
	City     string
	Products string
	Origin   string
}

// Result is a created order plus the provider session to redirect to.
type Result struct {
	Order       *domain.Order
	SessionID   string
	RedirectURL string
}

// Checkout runs the full sequence: validate, resolve products, build line
// items, persist the order, create the provider session. Validation and
// product-resolution failures happen before any side effect. The order
// write and the session creation are not transactional: a provider failure
// leaves the unpaid order in place.
func (s *Service) Checkout(ctx context.Context, in Input) (*Result, error) {
	if strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Address) == "" ||
		strings.TrimSpace(in.City) == "" {
		return nil, ErrMissingFields
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, ErrInvalidEmail
	}

	ids := SplitIDs(in.Products)
	distinct := cart.DistinctIDs(ids)

	products := make(map[string]domain.Product, len(distinct))
	if len(distinct) > 0 {
		resolved, err := s.products.ListByIDs(ctx, distinct)
		if err != nil {
			return nil, fmt.Errorf("resolve products: %w", err)
		}
		for _, p := range resolved {
			products[p.ID] = p
		}
	}

	countOf := func(id string) int64 {
		var n int64
		for _, v := range ids {
			if v == id {
				n++
			}
		}
		return n
	}

	items, err := BuildLineItems(distinct, countOf, products)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, orderrepo.CreateOrderInput{
		LineItems: items,
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		City:      in.City,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if s.events != nil {
		s.events.OrderCreated(ctx, *order)
	}

	sess, err := s.sessions.CreateSession(ctx, payment.SessionInput{
		LineItems:     items,
		CustomerEmail: in.Email,
		SuccessURL:    in.Origin + "/?success=true",
		CancelURL:     in.Origin + "/?canceled=true",
		OrderID:       order.ID,
	})
	if err != nil {
		s.logger.Printf("checkout: order %s has no payment session: %v", order.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	s.logger.Printf("checkout: order=%s session=%s items=%d", order.ID, sess.ID, len(items))
	return &Result{Order: order, SessionID: sess.ID, RedirectURL: sess.URL}, nil
}
