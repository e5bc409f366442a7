package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/logging"
	"cafeteria-orders/order-svc/internal/mailer"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Confirmer interface {
	SendConfirmation(ctx context.Context, orderID string) (bool, error)
}

// Consumer reacts to order_placed events: it counts item popularity and
// sends the confirmation email once per order.
type Consumer struct {
	Reader   MessageReader
	Stats    PopularityStore
	Notifier Confirmer
	logger   *slog.Logger
}

func NewConsumer(reader MessageReader, stats PopularityStore, notifier Confirmer) *Consumer {
	return &Consumer{
		Reader:   reader,
		Stats:    stats,
		Notifier: notifier,
		logger:   logging.New("consumer"),
	}
}

// Start reads until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("order event consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("order event consumer stopped")
				return
			}
			c.logger.Error("read message failed", "error", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.logger.Error("decode message failed", "offset", message.Offset, "error", err)
			continue
		}
		c.HandleEvent(ctx, event)
	}
}

func (c *Consumer) HandleEvent(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.EventOrderPlaced {
		return
	}
	log := c.logger.With("order_id", event.OrderID)

	if c.Stats != nil {
		// Redelivered events are counted once.
		first, err := c.Stats.MarkNotified(ctx, "counted", event.OrderID)
		if err != nil || first {
			if err := c.Stats.IncrementItems(ctx, event.OrderDate, event.Items); err != nil {
				log.Error("update popularity failed", "error", err)
			}
		}
	}

	if c.Notifier == nil || event.CustomerEmail == "" {
		return
	}
	marked := false
	if c.Stats != nil {
		first, err := c.Stats.MarkNotified(ctx, "confirmation", event.OrderID)
		if err != nil {
			log.Warn("confirmation marker unavailable", "error", err)
		} else if !first {
			log.Info("confirmation already sent")
			return
		}
		marked = err == nil
	}

	sent, err := c.Notifier.SendConfirmation(ctx, event.OrderID)
	switch {
	case errors.Is(err, mailer.ErrDisabled):
		log.Info("mailer disabled, confirmation skipped")
	case err != nil:
		log.Error("send confirmation failed", "error", err)
		// Release the marker so a redelivery can try again.
		if marked {
			if err := c.Stats.ClearNotified(ctx, "confirmation", event.OrderID); err != nil {
				log.Warn("confirmation marker not released", "error", err)
			}
		}
	case sent:
		log.Info("confirmation sent")
	}
}
