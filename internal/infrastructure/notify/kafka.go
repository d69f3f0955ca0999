package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sehatsaathi/voicecare/pkg/config"
)

// KafkaNotifier publishes notification intents to a Kafka topic for the
// downstream delivery service
type KafkaNotifier struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

// NewKafkaNotifier creates a Kafka-backed notifier
func NewKafkaNotifier(cfg *config.KafkaConfig, logger *zap.Logger) *KafkaNotifier {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    &kafka.Transport{Dial: dialer.DialFunc},
	}

	if logger != nil {
		logger.Info("✅ Kafka notifier initialized",
			zap.Strings("brokers", cfg.Brokers),
			zap.String("topic", cfg.Topic))
	}

	return &KafkaNotifier{
		writer: writer,
		topic:  cfg.Topic,
		logger: logger,
	}
}

// Notify publishes the intent keyed by beneficiary so intents for the same
// beneficiary stay ordered within a partition
func (n *KafkaNotifier) Notify(ctx context.Context, intent Intent) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(intent.BeneficiaryID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "alertType", Value: []byte(intent.AlertType)},
			{Key: "severity", Value: []byte(intent.Severity)},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		if n.logger != nil {
			n.logger.Error("❌ Failed to publish notification intent",
				zap.Error(err),
				zap.String("alert_id", intent.AlertID))
		}
		return err
	}

	return nil
}

// Close closes the Kafka writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
