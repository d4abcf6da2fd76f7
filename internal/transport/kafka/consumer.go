package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/logx"
)

// PresentFunc surfaces a single offer to the negotiator.
type PresentFunc func(ctx context.Context, o domain.DeliveryOffer) error

// availabilityGate reports whether the driver should receive offers.
// The negotiator itself does not enforce availability; this transport
// adapter does, as the collaborator closest to dispatch.
type availabilityGate interface {
	Online() bool
}

// Consumer wraps a Sarama consumer group and presents incoming offer
// events to the negotiator. Offers are transient: every message is
// marked consumed regardless of the decision outcome, because a
// redelivered offer has no value once it was dropped or superseded.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	gate    availabilityGate
	present PresentFunc
	logger  logx.Logger
}

// NewConsumer creates a new Kafka offer consumer. Returns (nil, nil)
// when the broker settings are absent, which disables the offer source.
func NewConsumer(brokers []string, groupID, topic string, gate availabilityGate, present PresentFunc, logger logx.Logger) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		gate:    gate,
		present: present,
		logger:  logger,
	}, nil
}

// Run starts the consumer loop until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Err(err))
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close shuts the consumer group down.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		h.c.handleMessage(sess.Context(), msg.Value)
		sess.MarkMessage(msg, "")
	}
	return nil
}

func (c *Consumer) handleMessage(ctx context.Context, value []byte) {
	var dto OfferEventDTO
	if err := json.Unmarshal(value, &dto); err != nil {
		c.logger.Warn("kafka: bad offer payload", logx.Err(err))
		return
	}

	o := ToDomain(dto)
	if o.DeliveryID == "" || o.OrderID == "" {
		c.logger.Warn("kafka: offer missing identifiers")
		return
	}

	if c.gate != nil && !c.gate.Online() {
		c.logger.Debug("offer dropped, driver offline", logx.String("order_id", o.OrderID))
		return
	}

	err := c.present(ctx, o)
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrOfferPending):
		c.logger.Warn("offer dropped, decision already pending", logx.String("order_id", o.OrderID))
	case errors.Is(err, apperr.ErrOfferExpired):
		c.logger.Warn("offer dropped, already expired", logx.String("order_id", o.OrderID))
	default:
		c.logger.Error("offer not presented", logx.String("order_id", o.OrderID), logx.Err(err))
	}
}
