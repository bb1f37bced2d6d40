// Package events publishes order lifecycle events to Kafka. Publishing is
// best effort: failures are logged and never fail the originating request.
package events

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"freshcart/internal/domain"
)

const (
	TypeOrderCreated = "order.created"
	TypeOrderPaid    = "order.paid"
)

// OrderEvent is the wire payload for order lifecycle events.
type OrderEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	Email      string    `json:"email,omitempty"`
	TotalCents int64     `json:"totalCents,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher writes order events to a single topic, keyed by order id.
// A Publisher built without brokers is disabled and drops everything.
type Publisher struct {
	writer *kafka.Writer
	logger *log.Logger
}

// NewPublisher parses a comma-separated broker list. An empty list yields a
// disabled publisher, so event emission stays optional in dev setups.
func NewPublisher(brokersCSV, topic string, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &Publisher{logger: logger}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// OrderCreated emits order.created with the order's line-item total.
func (p *Publisher) OrderCreated(ctx context.Context, o domain.Order) {
	var total int64
	for _, li := range o.LineItems {
		total += li.Quantity * li.UnitAmount
	}
	p.publish(ctx, OrderEvent{
		EventID:    uuid.NewString(),
		Type:       TypeOrderCreated,
		OrderID:    o.ID,
		Email:      o.Email,
		TotalCents: total,
		OccurredAt: time.Now().UTC(),
	})
}

// OrderPaid emits order.paid once the webhook confirms payment.
func (p *Publisher) OrderPaid(ctx context.Context, orderID string) {
	p.publish(ctx, OrderEvent{
		EventID:    uuid.NewString(),
		Type:       TypeOrderPaid,
		OrderID:    orderID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, ev OrderEvent) {
	if !p.Enabled() {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Printf("events: marshal %s order_id=%s error=%v", ev.Type, ev.OrderID, err)
		return
	}
	msg := kafka.Message{Key: []byte(ev.OrderID), Value: data, Time: ev.OccurredAt}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Printf("events: publish %s order_id=%s error=%v", ev.Type, ev.OrderID, err)
		return
	}
	p.logger.Printf("events: published %s order_id=%s", ev.Type, ev.OrderID)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
