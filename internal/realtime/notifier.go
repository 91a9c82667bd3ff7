// Package realtime broadcasts row insert events so dashboards can
// invalidate and refetch instead of diffing payloads
package realtime

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultChannel is the pub/sub channel insert events are published on
const DefaultChannel = "table-inserts"

// Notifier publishes and subscribes to table insert events over Redis
type Notifier struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewNotifier creates a notifier on the given channel.
// An empty channel name falls back to DefaultChannel.
func NewNotifier(client *redis.Client, channel string, logger *zap.Logger) *Notifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Notifier{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// PublishInsert announces that a row was inserted into a table.
// The payload is just the table name; subscribers refetch rather than
// patch state from the event.
func (n *Notifier) PublishInsert(ctx context.Context, table string) error {
	if err := n.client.Publish(ctx, n.channel, table).Err(); err != nil {
		return fmt.Errorf("failed to publish insert event: %w", err)
	}

	return nil
}

// Subscribe invokes refetch whenever a row is inserted into one of the
// watched tables. It blocks until the context is cancelled.
func (n *Notifier) Subscribe(ctx context.Context, tables []string, refetch func()) error {
	sub := n.client.Subscribe(ctx, n.channel)
	defer sub.Close()

	// Fail fast if the subscription could not be established
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if watchesTable(tables, msg.Payload) {
				n.logger.Debug("insert event received", zap.String("table", msg.Payload))
				refetch()
			}
		}
	}
}

// watchesTable reports whether an event payload names a watched table
func watchesTable(tables []string, payload string) bool {
	for _, table := range tables {
		if table == payload {
			return true
		}
	}
	return false
}
