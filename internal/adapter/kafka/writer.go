// Package kafka publishes alert events for downstream consumers that want the
// same signal as the email without scraping a mailbox.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/aurora-alert/internal/domain"
)

// Writer produces alert events to a Kafka topic.
// It implements pipeline.AlertPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured alert topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes the alert and writes it as a single message.
func (w *Writer) Publish(ctx context.Context, alert domain.Alert) error {
	msg, err := serializeAlert(alert)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish alert event: %w", err)
	}
	w.logger.Info("alert event published", "topic", w.writer.Topic, "periods", len(alert.Periods))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeAlert marshals an Alert into a Kafka message. The key is the
// zone plus the first qualifying window, so re-running the job against the
// same forecast produces the same key for log-compacted topics.
func serializeAlert(alert domain.Alert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert event: %w", err)
	}

	key := alert.Zone
	if len(alert.Periods) > 0 {
		key = fmt.Sprintf("%s|%s", alert.Zone, alert.Periods[0].UTCStart().Format(time.RFC3339))
	}

	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "zone", Value: []byte(alert.Zone)},
			{Key: "kp_max", Value: []byte(strconv.Itoa(alert.MaxKp()))},
		},
	}, nil
}
