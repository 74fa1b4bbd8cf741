// Package kafka provides the outbound event bus adapter. Finalized-order
// events are produced to a single topic keyed by order identifier, so all
// events of one order land in the same partition in order.
package kafka

import (
	"context"
	"encoding/json"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// Producer implements ports.EventPublisher on a synchronous Kafka producer.
// Synchronous sends keep the publish result observable to the caller, which
// logs and counts failures without affecting the committed order record.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer connects a synchronous producer to the given brokers.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Producer{producer: producer, topic: topic}, nil
}

// PublishOrderFinalized emits one finalized-order event carrying the full
// snapshot as JSON.
func (p *Producer) PublishOrderFinalized(_ context.Context, snapshot order.Snapshot) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("snapshot", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(snapshot.OrderID),
		Value: sarama.ByteEncoder(body),
	})
	return err
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	return p.producer.Close()
}
