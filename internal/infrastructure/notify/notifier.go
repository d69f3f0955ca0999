package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// Intent describes a notification the downstream messaging layer should
// deliver. The service records the intent; delivery happens elsewhere.
type Intent struct {
	AlertID       string                 `json:"alert_id"`
	BeneficiaryID string                 `json:"beneficiary_id"`
	ResponderID   string                 `json:"responder_id,omitempty"`
	AlertType     entities.AlertType     `json:"alert_type"`
	Severity      entities.AlertSeverity `json:"severity"`
	Message       string                 `json:"message"`
	MessageHindi  string                 `json:"message_hindi,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// Notifier records notification intents for escalated alerts
type Notifier interface {
	Notify(ctx context.Context, intent Intent) error
}

// LogNotifier logs intents instead of publishing. Used when Kafka is
// disabled.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the intent
func (n *LogNotifier) Notify(_ context.Context, intent Intent) error {
	if n.logger != nil {
		n.logger.Info("📣 Notification intent recorded",
			zap.String("alert_id", intent.AlertID),
			zap.String("beneficiary_id", intent.BeneficiaryID),
			zap.String("responder_id", intent.ResponderID),
			zap.String("alert_type", string(intent.AlertType)),
			zap.String("severity", string(intent.Severity)))
	}
	return nil
}
