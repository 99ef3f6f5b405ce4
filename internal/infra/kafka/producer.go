package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/config"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// NotificationEvent is the message body for the notifications topic. The API
// publishes these; the worker turns them into notification rows.
type NotificationEvent struct {
	RecipientID int64  `json:"recipient_id"`
	ActorID     int64  `json:"actor_id"`
	Type        string `json:"type"`
	VideoID     *int64 `json:"video_id,omitempty"`
	CommentID   *int64 `json:"comment_id,omitempty"`
	Message     string `json:"message,omitempty"`
}

// InitProducer initialises the Kafka producer.
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendNotificationEvent publishes one notification event.
func SendNotificationEvent(ctx context.Context, topic string, event *NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("user-%d", event.RecipientID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send notification event: %w", err)
	}

	return nil
}

// NotificationPublisher binds the producer to the notifications topic.
type NotificationPublisher struct {
	topic string
}

// NewNotificationPublisher builds a publisher for the given topic.
func NewNotificationPublisher(topic string) *NotificationPublisher {
	return &NotificationPublisher{topic: topic}
}

// Publish sends one notification event.
func (p *NotificationPublisher) Publish(ctx context.Context, event *NotificationEvent) error {
	return SendNotificationEvent(ctx, p.topic, event)
}

// CloseProducer closes the producer.
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
