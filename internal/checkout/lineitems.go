package checkout

import (
	"fmt"
	"strings"

	"freshcart/internal/domain"
)

const (
	currency          = "USD"
	deliveryFeeName   = "Delivery Fee"
	deliveryFeeAmount = 500 // $5.00 in minor units
)

// SplitIDs splits a comma-separated product identifier string, dropping
// empty segments so an empty submission yields no identifiers.
func SplitIDs(products string) []string {
	var ids []string
	for _, id := range strings.Split(products, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// BuildLineItems turns the distinct identifier list into payment line items,
// in distinct-set order, with the fixed delivery fee line appended last.
// countOf reports an identifier's multiplicity in the original submission;
// products maps identifiers to resolved catalog records. An identifier
// missing from products rejects the whole build.
func BuildLineItems(distinct []string, countOf func(string) int64, products map[string]domain.Product) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(distinct)+1)
	for _, id := range distinct {
		p, ok := products[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
		items = append(items, domain.LineItem{
			Quantity:   countOf(id),
			Name:       p.Name,
			Currency:   currency,
			UnitAmount: p.Price * 100,
		})
	}
	items = append(items, domain.LineItem{
		Quantity:   1,
		Name:       deliveryFeeName,
		Currency:   currency,
		UnitAmount: deliveryFeeAmount,
	})
	return items, nil
}
