package payment

import (
	"context"
	"io"
	"log"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeClient creates hosted checkout sessions through the Stripe API.
// It is configured once at process start with the secret key from the
// environment.
type StripeClient struct {
	api    *client.API
	logger *log.Logger
}

func NewStripe(apiKey string, logger *log.Logger) *StripeClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeClient{api: api, logger: logger}
}

func (c *StripeClient) CreateSession(ctx context.Context, in SessionInput) (*Session, error) {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(li.Currency),
				UnitAmount: stripe.Int64(li.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:     items,
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(in.CustomerEmail),
		SuccessURL:    stripe.String(in.SuccessURL),
		CancelURL:     stripe.String(in.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("orderId", in.OrderID)

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Printf("stripe: create session order_id=%s error=%v", in.OrderID, err)
		return nil, err
	}
	c.logger.Printf("stripe: created session id=%s order_id=%s", sess.ID, in.OrderID)
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}
