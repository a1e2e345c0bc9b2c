package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// StatusChangeEvent is what downstream delivery (the WhatsApp bridge)
// consumes. The core only publishes; it never delivers.
type StatusChangeEvent struct {
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerPhone string    `json:"customer_phone"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	Message       string    `json:"message,omitempty"`
	WhatsAppURL   string    `json:"whatsapp_url,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type KafkaNotifier struct {
	writer  *kafka.Writer
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *zap.Logger
}

func NewKafkaNotifier(brokers []string, topic string, log *zap.Logger) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	// The broker being down must not slow order transitions to a crawl;
	// trip after repeated failures and recover on its own.
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "order-status-notifier",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &KafkaNotifier{writer: w, breaker: cb, logger: log}
}

func (n *KafkaNotifier) NotifyStatusChange(ctx context.Context, o *model.Order, oldStatus, newStatus model.OrderStatus) error {
	event := StatusChangeEvent{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerPhone: o.CustomerPhone,
		OldStatus:     oldStatus.String(),
		NewStatus:     newStatus.String(),
		OccurredAt:    time.Now(),
	}
	if msg, ok := BuildStatusMessage(o, newStatus); ok {
		event.Message = msg
		event.WhatsAppURL = WhatsAppURL(o.CustomerPhone, msg)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(o.ID), // order_id for per-order ordering
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte("order.status_changed")},
			},
		})
	})
	return err
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
