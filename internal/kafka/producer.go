package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"priceWise/business/pricing"
	"priceWise/domain"

	"github.com/segmentio/kafka-go"
)

// Producer publishes served pricing decisions for downstream audit.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

var _ pricing.DecisionPublisher = (*Producer)(nil)

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

type decisionEvent struct {
	EventType string                `json:"event_type"`
	Decision  domain.DecisionRecord `json:"decision"`
	Timestamp time.Time             `json:"timestamp"`
}

func (p *Producer) PublishDecision(ctx context.Context, rec domain.DecisionRecord) error {
	event := decisionEvent{
		EventType: "PRICE_DECIDED",
		Decision:  rec,
		Timestamp: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal decision event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(rec.ItemID),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish decision event: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
