package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventBookingConfirmed = "booking.confirmed"

// BookingConfirmedEvent carries everything the ticket notifier needs, so
// consumers never read back from the database.
type BookingConfirmedEvent struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	Code           string    `json:"code"`
	PassengerName  string    `json:"passenger_name"`
	PassengerPhone string    `json:"passenger_phone"`
	Seats          []string  `json:"seats"`
	TotalAmount    int64     `json:"total_amount"`
	FromCity       string    `json:"from_city"`
	ToCity         string    `json:"to_city"`
	OperatorName   string    `json:"operator_name"`
	DepartureTime  time.Time `json:"departure_time"`
	TransactionID  string    `json:"transaction_id,omitempty"`
}

type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewProducer(brokers []string, log *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{
		writer: writer,
		log:    log.With(zap.String("component", "kafka_producer")),
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write message to %s: %w", topic, err)
	}

	p.log.Debug("Message published", zap.String("topic", topic), zap.String("key", key))
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// messageReader is the part of *kafka.Reader the consumer loop uses.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader messageReader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log.With(zap.String("component", "kafka_consumer")),
	}
}

// ConsumeBookingConfirmed blocks until ctx is done or the reader fails.
// Malformed or foreign messages and handler failures are logged and skipped,
// so one bad record cannot wedge the partition.
func (c *Consumer) ConsumeBookingConfirmed(ctx context.Context, handle func(context.Context, BookingConfirmedEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		event, err := DecodeBookingConfirmed(msg.Value)
		if err != nil {
			c.log.Warn("Skipping message",
				zap.Error(err),
				zap.String("key", string(msg.Key)),
				zap.Int64("offset", msg.Offset),
			)
			continue
		}

		if err := handle(ctx, event); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error("Failed to handle booking event",
				zap.Error(err),
				zap.String("code", event.Code),
				zap.Int64("offset", msg.Offset),
			)
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func DecodeBookingConfirmed(data []byte) (BookingConfirmedEvent, error) {
	var event BookingConfirmedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return event, fmt.Errorf("decode event: %w", err)
	}
	if event.Type != EventBookingConfirmed {
		return event, fmt.Errorf("unexpected event type %q", event.Type)
	}
	return event, nil
}
