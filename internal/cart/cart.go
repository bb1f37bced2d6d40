package cart

import (
	"context"
	"strings"

	"freshcart/internal/domain"
)

// DeliveryPrice is the fixed delivery charge in whole dollars, added on top
// of the cart subtotal.
const DeliveryPrice int64 = 5

// Lookup resolves product details for a set of identifiers.
type Lookup interface {
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

// Cart holds an ordered multiset of selected product identifiers; an
// identifier's multiplicity is the desired quantity. Product infos are
// re-fetched for the current distinct-id set after every change, and
// products whose info has not loaded contribute 0 to totals.
type Cart struct {
	lookup   Lookup
	selected []string
	infos    map[string]domain.Product
}

func New(lookup Lookup) *Cart {
	return &Cart{lookup: lookup, infos: map[string]domain.Product{}}
}

// Increase appends one occurrence of id to the selection. No upper bound.
func (c *Cart) Increase(ctx context.Context, id string) error {
	c.selected = append(c.selected, id)
	return c.refresh(ctx)
}

// Decrease removes exactly one occurrence of id if present, else no-op.
func (c *Cart) Decrease(ctx context.Context, id string) error {
	for i, v := range c.selected {
		if v == id {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			return c.refresh(ctx)
		}
	}
	return nil
}

// Quantity reports how many times id occurs in the selection.
func (c *Cart) Quantity(id string) int64 {
	var n int64
	for _, v := range c.selected {
		if v == id {
			n++
		}
	}
	return n
}

// DistinctIDs returns the de-duplicated ids in order of first appearance.
func (c *Cart) DistinctIDs() []string {
	return DistinctIDs(c.selected)
}

// ProductsField renders the selection as the comma-joined form value the
// checkout endpoint expects.
func (c *Cart) ProductsField() string {
	return strings.Join(c.selected, ",")
}

// Subtotal sums price times quantity over loaded product infos, in whole
// dollars.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, id := range c.selected {
		if info, ok := c.infos[id]; ok {
			sum += info.Price
		}
	}
	return sum
}

// Total is the subtotal plus the fixed delivery price.
func (c *Cart) Total() int64 {
	return c.Subtotal() + DeliveryPrice
}

func (c *Cart) refresh(ctx context.Context) error {
	ids := c.DistinctIDs()
	infos := make(map[string]domain.Product, len(ids))
	if len(ids) > 0 {
		products, err := c.lookup.ListByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, p := range products {
			infos[p.ID] = p
		}
	}
	c.infos = infos
	return nil
}

// DistinctIDs de-duplicates ids preserving order of first appearance. The
// checkout flow relies on this order for deterministic line items.
func DistinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
