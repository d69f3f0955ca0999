package entities

import (
	"time"

	"github.com/google/uuid"
)

// VisitStatus tracks the lifecycle of a scheduled home visit.
type VisitStatus string

const (
	VisitStatusScheduled VisitStatus = "scheduled"
	VisitStatusCompleted VisitStatus = "completed"
	VisitStatusMissed    VisitStatus = "missed"
)

// Visit is a home visit record for a beneficiary. The pipeline reads visits
// for risk scoring; creating visits from extracted data is the caller's job.
type Visit struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BeneficiaryID uuid.UUID   `json:"beneficiary_id" gorm:"type:uuid;not null;index"`
	WorkerID      uuid.UUID   `json:"worker_id" gorm:"type:uuid;not null;index"`
	Status        VisitStatus `json:"status" gorm:"type:varchar(20);default:'scheduled'"`
	ScheduledFor  *time.Time  `json:"scheduled_for,omitempty" gorm:"type:timestamp"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty" gorm:"type:timestamp;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Visit) TableName() string {
	return "visits"
}

// Vitals are the measurements the extractor pulls out of a spoken report.
// All fields are optional; absent means not mentioned, never zero.
type Vitals struct {
	Systolic     *int     `json:"systolic,omitempty"`
	Diastolic    *int     `json:"diastolic,omitempty"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	TemperatureC *float64 `json:"temperature_c,omitempty"`
}

// ExtractedVisit is the structured form of a spoken visit report. It is not
// persisted here; the shape is the authoritative hand-off to visit creation.
type ExtractedVisit struct {
	PatientName          *string  `json:"patient_name"`
	Symptoms             []string `json:"symptoms"`
	Vitals               Vitals   `json:"vitals"`
	ServicesProvided     []string `json:"services_provided"`
	ExtractionConfidence *float64 `json:"extraction_confidence"`
}

// EmptyExtractedVisit is the best-effort fallback when the model response
// cannot be parsed. Slices are initialized so callers never see null arrays.
func EmptyExtractedVisit() ExtractedVisit {
	return ExtractedVisit{
		Symptoms:         []string{},
		ServicesProvided: []string{},
	}
}

// HasPatientName reports whether a non-blank patient name was extracted.
func (v ExtractedVisit) HasPatientName() bool {
	return v.PatientName != nil && *v.PatientName != ""
}
