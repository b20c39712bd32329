// Package kafka publishes integration events to the message broker.
// Downstream consumers (notifications, analytics) react to order status
// changes without the core knowing about them.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// orderChangedMessage is the wire format of one order-changed event.
type orderChangedMessage struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderStatusPublisher emits order-changed events to a Kafka topic. Messages
// are keyed by order id so consumers see one order's changes in order.
type OrderStatusPublisher struct {
	writer *kafka.Writer
	now    func() time.Time
}

// NewOrderStatusPublisher creates a publisher writing to the given topic.
func NewOrderStatusPublisher(brokers []string, topic string) *OrderStatusPublisher {
	return &OrderStatusPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		now: time.Now,
	}
}

// PublishOrderChanged emits one order-changed event.
func (p *OrderStatusPublisher) PublishOrderChanged(
	ctx context.Context,
	orderID kernel.UUID,
	status parcel.Status,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(orderChangedMessage{
		OrderID:    orderID.String(),
		Status:     status.String(),
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderID.String()),
		Value: payload,
	})
	if err != nil {
		return errs.NewTransientStoreError(err)
	}

	return nil
}

// Close flushes pending messages and releases the writer's connections.
func (p *OrderStatusPublisher) Close() error {
	return p.writer.Close()
}
