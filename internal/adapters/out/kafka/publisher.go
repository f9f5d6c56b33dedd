// Package kafka publishes integration events to the message broker.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"parcelhub/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// KafkaEventPublisher implements EventPublisher on top of kafka-go writers,
// one writer per topic. Messages are keyed so every event for the same parcel
// or shipment lands on the same partition.
type KafkaEventPublisher struct {
	parcelWriter   *kafka.Writer
	shipmentWriter *kafka.Writer
	logger         *slog.Logger
}

// NewKafkaEventPublisher creates a publisher writing to the given topics.
func NewKafkaEventPublisher(brokerAddr, parcelTopic, shipmentTopic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		parcelWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokerAddr),
			Topic:    parcelTopic,
			Balancer: &kafka.LeastBytes{},
		},
		shipmentWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokerAddr),
			Topic:    shipmentTopic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger.With("component", "kafka_publisher"),
	}
}

// PublishParcelStatusChanged sends a parcel transition event keyed by tracking number.
func (p *KafkaEventPublisher) PublishParcelStatusChanged(ctx context.Context, event ports.ParcelStatusChanged) error {
	return p.publish(ctx, p.parcelWriter, event.TrackingNo, event)
}

// PublishShipmentAdvanced sends a shipment transition event keyed by shipment ID.
func (p *KafkaEventPublisher) PublishShipmentAdvanced(ctx context.Context, event ports.ShipmentAdvanced) error {
	return p.publish(ctx, p.shipmentWriter, event.ShipmentID, event)
}

func (p *KafkaEventPublisher) publish(ctx context.Context, writer *kafka.Writer, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	if err := writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event", "topic", writer.Topic, "key", key, "error", err)
		return err
	}

	p.logger.Debug("event published", "topic", writer.Topic, "key", key)
	return nil
}

// Close shuts down both writers.
func (p *KafkaEventPublisher) Close() error {
	if err := p.parcelWriter.Close(); err != nil {
		return err
	}
	return p.shipmentWriter.Close()
}
