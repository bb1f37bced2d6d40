package domain

import "time"

// LineItem is one purchasable unit entry sent to the payment provider and
// snapshotted into the order. UnitAmount is in minor units (cents).
type LineItem struct {
	Quantity   int64  `json:"quantity"`
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unitAmount"`
}

// Order is a checkout attempt persisted before payment confirmation.
// Line items are a snapshot, not live product references. Paid starts
// false and is flipped by the payment webhook.
type Order struct {
	ID        string     `json:"id"`
	LineItems []LineItem `json:"lineItems"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	City      string     `json:"city"`
	Paid      bool       `json:"paid"`
	CreatedAt time.Time  `json:"createdAt"`
}
