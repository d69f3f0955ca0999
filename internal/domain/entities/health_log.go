package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SymptomSeverity is the self-reported severity of a health log entry.
type SymptomSeverity string

const (
	SeverityMild     SymptomSeverity = "mild"
	SeverityModerate SymptomSeverity = "moderate"
	SeveritySevere   SymptomSeverity = "severe"
)

// HealthLog is a self-reported or worker-reported symptom log for a
// beneficiary. Recent logs feed the deterministic risk score.
type HealthLog struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BeneficiaryID uuid.UUID       `json:"beneficiary_id" gorm:"type:uuid;not null;index"`
	Symptoms      datatypes.JSON  `json:"symptoms" gorm:"type:jsonb"`
	Severity      SymptomSeverity `json:"severity" gorm:"type:varchar(20);default:'mild'"`
	IsRedFlag     bool            `json:"is_red_flag" gorm:"default:false"`
	AIRiskScore   *float64        `json:"ai_risk_score,omitempty" gorm:"type:numeric"` // 0..100, written by the classifier when it ran on this log
	Notes         string          `json:"notes,omitempty" gorm:"type:text"`
	LoggedAt      time.Time       `json:"logged_at" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (HealthLog) TableName() string {
	return "health_logs"
}
