package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
	"github.com/sehatsaathi/voicecare/internal/domain/repositories"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/cache"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/notify"
)

// Signal is a severity-worthy trigger handed to the escalation manager:
// either the classifier flagged the symptoms or the deterministic score
// crossed the threshold.
type Signal struct {
	Beneficiary *entities.Beneficiary
	AlertType   entities.AlertType
	RiskScore   float64 // 0..100 from the triggering signal
	Reasons     []string
	Symptoms    []string
	Location    *string
}

// Escalation is the manager's decision: whether an alert was created and,
// when suppressed, why not.
type Escalation struct {
	Created    bool
	Suppressed bool
	Alert      *entities.Alert
}

// Manager creates alerts for severity-worthy signals, deduplicates repeats
// inside a time window, and records a notify intent when a responder is
// linked.
type Manager struct {
	alerts      repositories.AlertRepository
	deduper     cache.Deduper
	notifier    notify.Notifier
	dedupWindow time.Duration
	logger      *zap.Logger
}

// NewManager creates an escalation manager
func NewManager(alerts repositories.AlertRepository, deduper cache.Deduper, notifier notify.Notifier, dedupWindow time.Duration, logger *zap.Logger) *Manager {
	if dedupWindow <= 0 {
		dedupWindow = 30 * time.Minute
	}
	return &Manager{
		alerts:      alerts,
		deduper:     deduper,
		notifier:    notifier,
		dedupWindow: dedupWindow,
		logger:      logger,
	}
}

// SeverityForScore maps a triggering risk score to an alert tier
func SeverityForScore(score float64) entities.AlertSeverity {
	if score >= 80 {
		return entities.AlertSeverityCritical
	}
	return entities.AlertSeverityHigh
}

// Escalate creates exactly one open alert for the signal. A repeat signal
// for the same beneficiary and alert type inside the dedup window is
// suppressed rather than duplicated. A missing responder linkage is not a
// failure; the alert is still created, only the notify intent is skipped.
func (m *Manager) Escalate(ctx context.Context, signal Signal) (Escalation, error) {
	if signal.AlertType == "" {
		return Escalation{}, apperrors.ErrInvalidInput("Alert type is required")
	}

	claimedKey := ""
	if signal.Beneficiary != nil && m.deduper != nil {
		key := dedupKey(signal.Beneficiary.ID, signal.AlertType)
		fresh, err := m.deduper.Claim(ctx, key, m.dedupWindow)
		if err != nil {
			// A broken dedup store must not block escalation
			if m.logger != nil {
				m.logger.Warn("⚠️ Dedup claim failed, escalating anyway", zap.Error(err))
			}
		} else if !fresh {
			if m.logger != nil {
				m.logger.Info("🔕 Duplicate alert suppressed",
					zap.String("beneficiary_id", signal.Beneficiary.ID.String()),
					zap.String("alert_type", string(signal.AlertType)))
			}
			return Escalation{Suppressed: true}, nil
		} else {
			claimedKey = key
		}
	}

	a := entities.NewAlert(SeverityForScore(signal.RiskScore), signal.AlertType, describeSignal(signal))
	a.AIDetected = true
	a.AIConfidenceScore = signal.RiskScore / 100
	a.Location = signal.Location

	if signal.Beneficiary != nil {
		id := signal.Beneficiary.ID
		a.BeneficiaryID = &id
		a.ResponderID = signal.Beneficiary.ResponderID
	}
	if len(signal.Symptoms) > 0 {
		if raw, err := json.Marshal(signal.Symptoms); err == nil {
			a.SymptomsReported = raw
		}
	}

	if err := m.alerts.Create(ctx, a); err != nil {
		// Give the claim back so a retry inside the window is not suppressed
		// while no alert exists.
		m.releaseClaim(ctx, claimedKey)
		return Escalation{}, apperrors.ErrAlertCreateFailed(err)
	}

	if m.logger != nil {
		m.logger.Info("🚨 Alert created",
			zap.String("alert_id", a.ID.String()),
			zap.String("severity", string(a.SeverityLevel)),
			zap.String("alert_type", string(a.AlertType)))
	}

	m.recordIntent(ctx, a)

	return Escalation{Created: true, Alert: a}, nil
}

func (m *Manager) releaseClaim(ctx context.Context, key string) {
	if key == "" || m.deduper == nil {
		return
	}
	if err := m.deduper.Release(ctx, key); err != nil && m.logger != nil {
		m.logger.Warn("⚠️ Dedup release failed, window stays claimed",
			zap.Error(err), zap.String("key", key))
	}
}

// CreateParams describes a caller-initiated alert, e.g. an SOS button press
// relayed by the app. Severity comes from the caller rather than a score.
type CreateParams struct {
	Severity      entities.AlertSeverity
	AlertType     entities.AlertType
	Description   string
	Symptoms      []string
	Location      *string
	BeneficiaryID *uuid.UUID
	ResponderID   *uuid.UUID
}

// Create persists a caller-initiated alert. No dedup window applies; an
// explicit human action always produces an alert.
func (m *Manager) Create(ctx context.Context, params CreateParams) (*entities.Alert, error) {
	a := entities.NewAlert(params.Severity, params.AlertType, params.Description)
	a.BeneficiaryID = params.BeneficiaryID
	a.ResponderID = params.ResponderID
	a.Location = params.Location
	if len(params.Symptoms) > 0 {
		if raw, err := json.Marshal(params.Symptoms); err == nil {
			a.SymptomsReported = raw
		}
	}

	if err := m.alerts.Create(ctx, a); err != nil {
		return nil, apperrors.ErrAlertCreateFailed(err)
	}

	if m.logger != nil {
		m.logger.Info("🚨 Alert created",
			zap.String("alert_id", a.ID.String()),
			zap.String("severity", string(a.SeverityLevel)),
			zap.String("alert_type", string(a.AlertType)))
	}

	m.recordIntent(ctx, a)
	return a, nil
}

// Acknowledge moves an open alert into the acknowledged state for the
// responder workflow. Only open alerts can be acknowledged.
func (m *Manager) Acknowledge(ctx context.Context, alertID uuid.UUID) (*entities.Alert, error) {
	a, err := m.alerts.FindByID(ctx, alertID)
	if err != nil {
		return nil, apperrors.ErrStoreFailed("find alert", err)
	}
	if a == nil {
		return nil, apperrors.ErrNotFound("Alert")
	}

	if err := a.Acknowledge(); err != nil {
		return nil, apperrors.ErrInvalidInput("Only open alerts can be acknowledged")
	}
	if err := m.alerts.UpdateStatus(ctx, a); err != nil {
		return nil, apperrors.ErrStoreFailed("update alert status", err)
	}

	if m.logger != nil {
		m.logger.Info("📋 Alert acknowledged", zap.String("alert_id", a.ID.String()))
	}
	return a, nil
}

// OpenAlerts lists a beneficiary's open alerts for the responder view
func (m *Manager) OpenAlerts(ctx context.Context, beneficiaryID uuid.UUID) ([]entities.Alert, error) {
	alerts, err := m.alerts.ListOpenByBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return nil, apperrors.ErrStoreFailed("list open alerts", err)
	}
	return alerts, nil
}

// recordIntent emits a notify intent when a responder is linked. Intent
// failures are logged, not surfaced; the alert already exists.
func (m *Manager) recordIntent(ctx context.Context, a *entities.Alert) {
	if m.notifier == nil || a.ResponderID == nil {
		return
	}

	intent := notify.Intent{
		AlertID:      a.ID.String(),
		ResponderID:  a.ResponderID.String(),
		AlertType:    a.AlertType,
		Severity:     a.SeverityLevel,
		Message:      a.Description,
		MessageHindi: hindiSummary(a.SeverityLevel),
		CreatedAt:    a.CreatedAt,
	}
	if a.BeneficiaryID != nil {
		intent.BeneficiaryID = a.BeneficiaryID.String()
	}

	if err := m.notifier.Notify(ctx, intent); err != nil && m.logger != nil {
		m.logger.Error("❌ Failed to record notify intent",
			zap.Error(err),
			zap.String("alert_id", a.ID.String()))
	}
}

func dedupKey(beneficiaryID uuid.UUID, alertType entities.AlertType) string {
	return fmt.Sprintf("alert:dedup:%s:%s", beneficiaryID, alertType)
}

// describeSignal composes the alert description from the reasons list
func describeSignal(signal Signal) string {
	if len(signal.Reasons) == 0 {
		return "Escalation triggered by symptom analysis"
	}
	return strings.Join(signal.Reasons, "; ")
}

func hindiSummary(severity entities.AlertSeverity) string {
	if severity == entities.AlertSeverityCritical {
		return "गंभीर चेतावनी: तुरंत ध्यान देने की आवश्यकता है"
	}
	return "चेतावनी: जल्द जांच की आवश्यकता है"
}
