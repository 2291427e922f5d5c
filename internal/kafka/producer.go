package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// BottleEventMessage is published for every recorded bottle event.
type BottleEventMessage struct {
	EventID     int64     `json:"event_id"`
	BottleID    int64     `json:"bottle_id"`
	FlightID    int64     `json:"flight_id"`
	UserID      *int64    `json:"user_id,omitempty"`
	EventType   string    `json:"event_type"`
	AmountML    *float64  `json:"amount_ml,omitempty"`
	PctAfter    float64   `json:"pct_after"`
	QRURL       string    `json:"qr_url"`
	ItemName    string    `json:"item_name"`
	AirlineName string    `json:"airline_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("topic", topic).Str("key", key).Msg("published to kafka")
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
