// Package kafka provides the inbound event bus adapter: a consumer group
// that feeds finalized-order events into the audit pipeline.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"orderflow/internal/core/application/audit"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// FinalizedOrderConsumer consumes the finalized-order topic and archives
// each order's snapshot.
//
// Delivery is at least once: a message is marked consumed only after the
// archive write succeeds, and a failed write aborts the claim so the broker
// redelivers. Redelivery is safe because the archive key is derived from the
// order identifier and the write overwrites the same object.
type FinalizedOrderConsumer struct {
	group    sarama.ConsumerGroup
	topic    string
	notifier *audit.Notifier
	log      *slog.Logger
}

// NewFinalizedOrderConsumer joins the given consumer group on the brokers.
func NewFinalizedOrderConsumer(
	brokers []string,
	groupID string,
	topic string,
	notifier *audit.Notifier,
	log *slog.Logger,
) (*FinalizedOrderConsumer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if groupID == "" {
		return nil, errs.NewValueIsRequiredError("groupID")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	config := sarama.NewConfig()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, err
	}

	return &FinalizedOrderConsumer{
		group:    group,
		topic:    topic,
		notifier: notifier,
		log:      log,
	}, nil
}

// Run consumes until the context is cancelled. Consume returns on every
// rebalance, so it loops.
func (c *FinalizedOrderConsumer) Run(ctx context.Context) error {
	handler := &archiveHandler{notifier: c.notifier, log: c.log}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.ErrorContext(ctx, "consumer group session failed", "error", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close leaves the consumer group.
func (c *FinalizedOrderConsumer) Close() error {
	return c.group.Close()
}

type archiveHandler struct {
	notifier *audit.Notifier
	log      *slog.Logger
}

func (h *archiveHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *archiveHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *archiveHandler) ConsumeClaim(
	session sarama.ConsumerGroupSession,
	claim sarama.ConsumerGroupClaim,
) error {
	for message := range claim.Messages() {
		var snapshot order.Snapshot
		if err := json.Unmarshal(message.Value, &snapshot); err != nil {
			// Malformed events can never succeed on retry; drop them.
			h.log.Error("dropping malformed finalized-order event",
				"partition", message.Partition, "offset", message.Offset, "error", err)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.notifier.Archive(session.Context(), snapshot); err != nil {
			// Abort the claim without marking; the broker redelivers.
			return err
		}

		session.MarkMessage(message, "")
	}

	return nil
}
