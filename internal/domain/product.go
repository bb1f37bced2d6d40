package domain

import "time"

// Product is a catalog entry. Price is stored in whole dollars; it is
// converted to minor units only when payment line items are built.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Picture     string    `json:"picture,omitempty"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}
