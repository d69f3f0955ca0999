package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AlertSeverity is the escalation tier of an alert. The pipeline never emits
// low/medium alerts; anything below the escalation threshold stays
// informational.
type AlertSeverity string

const (
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// AlertType classifies what triggered an alert.
type AlertType string

const (
	AlertTypeRedFlagSymptom AlertType = "red_flag_symptom"
	AlertTypeEmergencySOS   AlertType = "emergency_sos"
	AlertTypeHighRiskScore  AlertType = "high_risk_score"
	AlertTypeMissedVisit    AlertType = "missed_visit"
)

// AlertStatus tracks the responder workflow. Alerts start open; transitions
// out of open belong to the responder workflow, not this pipeline.
type AlertStatus string

const (
	AlertStatusOpen         AlertStatus = "open"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// Alert is an escalation record routed to a responder.
type Alert struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BeneficiaryID *uuid.UUID    `json:"beneficiary_id,omitempty" gorm:"type:uuid;index"`
	ResponderID   *uuid.UUID    `json:"responder_id,omitempty" gorm:"type:uuid;index"`
	SeverityLevel AlertSeverity `json:"severity_level" gorm:"type:varchar(20);not null;index"`
	AlertType     AlertType     `json:"alert_type" gorm:"type:varchar(50);not null;index"`
	Status        AlertStatus   `json:"status" gorm:"type:varchar(20);not null;index;default:'open'"`

	Description      string         `json:"description" gorm:"type:text;not null"`
	SymptomsReported datatypes.JSON `json:"symptoms_reported,omitempty" gorm:"type:jsonb"`
	Location         *string        `json:"location,omitempty" gorm:"type:varchar(255)"`

	AIDetected        bool    `json:"ai_detected" gorm:"default:false"`
	AIConfidenceScore float64 `json:"ai_confidence_score" gorm:"type:numeric;default:0"` // 0..1

	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty" gorm:"type:timestamp"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Alert) TableName() string {
	return "alerts"
}

// NewAlert creates an open alert with the given severity and type.
func NewAlert(severity AlertSeverity, alertType AlertType, description string) *Alert {
	return &Alert{
		ID:            uuid.New(),
		SeverityLevel: severity,
		AlertType:     alertType,
		Status:        AlertStatusOpen,
		Description:   description,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// Acknowledge marks an open alert as acknowledged.
func (a *Alert) Acknowledge() error {
	if a.Status != AlertStatusOpen {
		return ErrInvalidAlertTransition
	}
	now := time.Now()
	a.Status = AlertStatusAcknowledged
	a.AcknowledgedAt = &now
	a.UpdatedAt = now
	return nil
}

// Resolve marks an alert as resolved. Resolved is terminal.
func (a *Alert) Resolve() error {
	if a.Status == AlertStatusResolved {
		return ErrInvalidAlertTransition
	}
	now := time.Now()
	a.Status = AlertStatusResolved
	a.ResolvedAt = &now
	a.UpdatedAt = now
	return nil
}
