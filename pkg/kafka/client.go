// Package kafka provides the audit event producer and the indexing consumer.
package kafka

import (
	"context"
	"encoding/json"

	"guardian-portal-go/internal/config"
	"guardian-portal-go/pkg/log"
	"guardian-portal-go/pkg/tasks"

	"github.com/segmentio/kafka-go"
)

// EventIndexer consumes conversation events off the audit topic. This
// decouples the consumer loop from the concrete Elasticsearch indexer.
type EventIndexer interface {
	Index(ctx context.Context, event tasks.ConversationEvent) error
}

var producer *kafka.Writer

// InitProducer initializes the audit event producer.
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka producer initialized successfully")
}

// PublishConversationEvent sends one audit event to the topic. Callers treat
// a failure here as non-fatal.
func PublishConversationEvent(ctx context.Context, event tasks.ConversationEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return producer.WriteMessages(ctx, kafka.Message{Value: eventBytes})
}

// StartConsumer runs the indexing consumer loop. MySQL is the source of truth
// for the audit log, so index failures are logged and the offset committed
// rather than retried.
func StartConsumer(cfg config.KafkaConfig, indexer EventIndexer) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  "guardian-portal-indexer",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	log.Infof("Kafka consumer started, listening on topic '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(context.Background())
		if err != nil {
			log.Error("failed to read message from Kafka", err)
			break
		}

		var event tasks.ConversationEvent
		if err := json.Unmarshal(m.Value, &event); err != nil {
			log.Errorf("failed to decode Kafka message: %v, value: %s", err, string(m.Value))
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("failed to commit malformed message: %v", err)
			}
			continue
		}

		if err := indexer.Index(context.Background(), event); err != nil {
			log.Errorf("failed to index conversation %d: %v", event.ConversationID, err)
		}
		if err := r.CommitMessages(context.Background(), m); err != nil {
			log.Errorf("failed to commit Kafka offset: %v", err)
		}
	}

	if err := r.Close(); err != nil {
		log.Fatalf("failed to close Kafka consumer: %v", err)
	}
}
