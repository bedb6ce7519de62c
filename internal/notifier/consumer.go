// Package notifier consumes contact lifecycle events and emails the
// affected users.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"mindlyst/internal/events"
	"mindlyst/internal/user"
)

type Consumer struct {
	reader    *kafka.Reader
	directory *user.Repository
	mailer    *Mailer
}

func NewConsumer(brokers []string, topic, groupID string, directory *user.Repository, mailer *Mailer) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	return &Consumer{reader: reader, directory: directory, mailer: mailer}
}

// Run blocks until ctx is cancelled. Malformed or undeliverable events are
// logged and skipped; delivery is best-effort by design.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var event events.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			slog.Warn("skipping malformed event", "error", err)
			continue
		}

		recipient, err := c.directory.FindByID(ctx, event.UserID)
		if err != nil || recipient == nil {
			slog.Warn("cannot resolve notified user", "userId", event.UserID, "error", err)
			continue
		}
		actor, err := c.directory.FindByID(ctx, event.ActorID)
		if err != nil {
			slog.Warn("cannot resolve acting user", "userId", event.ActorID, "error", err)
		}

		if err := c.mailer.Send(event, recipient, actor); err != nil {
			slog.Error("failed to send notification email", "to", recipient.Email, "error", err)
		}
	}
}
