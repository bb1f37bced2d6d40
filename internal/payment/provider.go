// Package payment abstracts the hosted-checkout provider so the checkout
// flow depends on a capability, not on a concrete SDK client.
package payment

import (
	"context"

	"freshcart/internal/domain"
)

// SessionInput describes one hosted payment session to create. OrderID is
// attached as metadata so the webhook can find the order later.
type SessionInput struct {
	LineItems     []domain.LineItem
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	OrderID       string
}

// Session is the provider-hosted checkout page the client is redirected to.
type Session struct {
	ID  string
	URL string
}

type SessionCreator interface {
	CreateSession(ctx context.Context, in SessionInput) (*Session, error)
}
