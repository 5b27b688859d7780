package parcel_events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"parcel-service/internal/entities"
	"parcel-service/internal/pkg/metrics"
)

// Message is the JSON body published for every committed parcel status change.
type Message struct {
	ParcelID   int64     `json:"parcel_id"`
	Field      string    `json:"field"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	producer producer
	topic    string
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

// PublishStatusChanged keys messages by parcel id so one parcel's events stay ordered.
func (p *Publisher) PublishStatusChanged(ctx context.Context, event entities.ParcelEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(Message{
		ParcelID:   event.ParcelID,
		Field:      event.Field.String(),
		From:       event.FromStatus,
		To:         event.ToStatus,
		Actor:      event.Actor,
		OccurredAt: event.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal parcel event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.ParcelID, 10)),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		metrics.ParcelEventsPublishedTotal.WithLabelValues(event.Field.String(), "error").Inc()
		return fmt.Errorf("send parcel event: %w", err)
	}

	metrics.ParcelEventsPublishedTotal.WithLabelValues(event.Field.String(), "ok").Inc()
	return nil
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) PublishStatusChanged(context.Context, entities.ParcelEvent) error {
	return nil
}
