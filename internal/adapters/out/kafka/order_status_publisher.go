// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/pkg/errs"

	"github.com/Shopify/sarama"
)

// OrderStatusChangedMessage is the JSON value of every message on the
// order changed topic.
type OrderStatusChangedMessage struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  string    `json:"customer_id"`
	PharmacyID  string    `json:"pharmacy_id"`
	CourierID   *string   `json:"courier_id,omitempty"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func messageFromEvent(event order.StatusChangedEvent) OrderStatusChangedMessage {
	msg := OrderStatusChangedMessage{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.Number.String(),
		CustomerID:  event.CustomerID.String(),
		PharmacyID:  event.PharmacyID.String(),
		To:          event.To.String(),
		OccurredAt:  event.OccurredAt.UTC(),
	}
	if event.From != order.Unknown {
		msg.From = event.From.String()
	}
	if event.CourierID != nil {
		id := event.CourierID.String()
		msg.CourierID = &id
	}
	return msg
}

// NewSyncProducer connects to the brokers in the comma separated hosts list
// and waits for all in-sync replicas on every send.
func NewSyncProducer(hosts string) (sarama.SyncProducer, error) {
	brokers := strings.Split(hosts, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3

	client, err := sarama.NewClient(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("connect to kafka %s: %w", hosts, err)
	}

	producer, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

// OrderStatusPublisher implements ports.Notifier. Messages are keyed by order
// id so that the changes of one order stay ordered within a partition.
type OrderStatusPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewOrderStatusPublisher creates a publisher writing to topic. The producer is
// owned by the publisher and closed with it.
func NewOrderStatusPublisher(producer sarama.SyncProducer, topic string) (*OrderStatusPublisher, error) {
	if producer == nil {
		return nil, errs.NewValueIsRequiredError("producer")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	return &OrderStatusPublisher{producer: producer, topic: topic}, nil
}

// Publish sends one status change and waits for the broker acknowledgement.
func (p *OrderStatusPublisher) Publish(ctx context.Context, event order.StatusChangedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(messageFromEvent(event))
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID.String()),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publish %s of order %s: %w", event.To, event.OrderID, err)
	}
	return nil
}

// Close closes the underlying producer.
func (p *OrderStatusPublisher) Close() error {
	return p.producer.Close()
}

// LogNotifier stands in for the publisher when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logger.With("component", "kafka.LogNotifier")}
}

// Publish logs the change at info level and never fails.
func (n LogNotifier) Publish(ctx context.Context, event order.StatusChangedEvent) error {
	n.logger.InfoContext(ctx, "order status changed",
		"order_id", event.OrderID.String(),
		"from", event.From.String(),
		"to", event.To.String(),
	)
	return nil
}
