package entities

import (
	"time"

	"github.com/google/uuid"
)

// AnemiaStatus is the recorded anemia classification for a beneficiary.
type AnemiaStatus string

const (
	AnemiaStatusNone     AnemiaStatus = "none"
	AnemiaStatusMild     AnemiaStatus = "mild"
	AnemiaStatusModerate AnemiaStatus = "moderate"
	AnemiaStatusSevere   AnemiaStatus = "severe"
)

// Beneficiary is a person on an ASHA worker's caseload. The voice pipeline
// only ever reads beneficiaries; caseload management lives upstream.
type Beneficiary struct {
	ID               uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           *string      `json:"user_id,omitempty" gorm:"type:varchar(255);index"` // upstream identity when the beneficiary has her own login
	Name             string       `json:"name" gorm:"type:varchar(255);not null"`
	Phone            string       `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Village          string       `json:"village,omitempty" gorm:"type:varchar(255)"`
	AssignedWorkerID uuid.UUID    `json:"assigned_worker_id" gorm:"type:uuid;not null;index"`
	ResponderID      *uuid.UUID   `json:"responder_id,omitempty" gorm:"type:uuid;index"`

	// Risk profile inputs
	IsHighRisk            bool         `json:"is_high_risk" gorm:"default:false"`
	AnemiaStatus          AnemiaStatus `json:"anemia_status" gorm:"type:varchar(20);default:'none'"`
	LastHemoglobinLevel   *float64     `json:"last_hemoglobin_level,omitempty" gorm:"type:numeric"`
	PreviousComplications *string      `json:"previous_complications,omitempty" gorm:"type:text"`
	IsPregnant            bool         `json:"is_pregnant" gorm:"default:false"`
	PregnancyWeek         *int         `json:"pregnancy_week,omitempty" gorm:"type:integer"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Beneficiary) TableName() string {
	return "beneficiaries"
}

// Worker is an ASHA worker or partner-organization responder profile.
type Worker struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID   string    `json:"user_id" gorm:"type:varchar(255);not null;uniqueIndex"` // upstream-authenticated identity
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone    string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Village  string    `json:"village,omitempty" gorm:"type:varchar(255)"`
	Language string    `json:"language,omitempty" gorm:"type:varchar(10);default:'hi'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Worker) TableName() string {
	return "workers"
}
