package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

// MessageReader is the part of kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads booking events, for operators tailing the stream.
type Consumer struct {
	Reader MessageReader
	Logger *logger.Logger
}

func NewConsumer(brokers []string, topic, groupID string, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{Reader: reader, Logger: log}
}

// Run calls handle for each event until ctx is cancelled. Messages that are
// not booking events are logged and skipped.
func (c *Consumer) Run(ctx context.Context, handle func(models.BookingEvent) error) error {
	for {
		m, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		var event models.BookingEvent
		if err := json.Unmarshal(m.Value, &event); err != nil {
			c.Logger.LogKafka("DECODE_FAILED", m.Topic, fmt.Sprintf("offset=%d: %v", m.Offset, err))
			continue
		}
		if err := handle(event); err != nil {
			return err
		}
	}
}

func (c *Consumer) Close() error {
	return c.Reader.Close()
}
