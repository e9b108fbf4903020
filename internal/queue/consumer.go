package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer reads change events from the broker and appends one line per
// event to an audit log file.
type Consumer struct {
	URL     string
	Queue   string
	LogPath string
}

// Run connects to the broker and consumes until ctx is cancelled.  Lost
// connections are retried with exponential backoff capped at 30s; a
// message that cannot be handled is rejected without requeue so a bad
// payload cannot loop.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			slog.Warn("audit-consumer: failed to dial broker", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("audit-consumer: consume loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		slog.Warn("audit-consumer: set QoS failed", "error", err)
	}
	if _, err := declareQueue(ch, c.Queue); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(d.Body); err != nil {
				slog.Error("audit-consumer: handle message failed", "error", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Entity == "" || ev.Action == "" {
		return errors.New("event without entity or action")
	}

	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatEvent(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatEvent renders ev as a single audit line.
func FormatEvent(ev Event) string {
	line := fmt.Sprintf("[%s] %s %s | id=%d | event=%s", ev.OccurredAt, ev.Entity, ev.Action, ev.EntityID, ev.ID)
	if ev.Data != nil {
		if data, err := json.Marshal(ev.Data); err == nil {
			line += " | data=" + string(data)
		}
	}
	return line + "\n"
}

// sleep waits for d or until ctx is done, reporting whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
