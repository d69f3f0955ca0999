package alertdto

import (
	"time"
)

// CreateAlertRequest is a caller-initiated alert, e.g. an SOS relayed by
// the app
type CreateAlertRequest struct {
	SeverityLevel    string   `json:"severity_level" validate:"required,oneof=high critical"`
	AlertType        string   `json:"alert_type" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	SymptomsReported []string `json:"symptoms_reported,omitempty"`
	Location         *string  `json:"location,omitempty"`
	BeneficiaryID    *string  `json:"beneficiary_id,omitempty"`
}

// AlertSummary is the created alert's caller-facing view
type AlertSummary struct {
	ID            string    `json:"id"`
	SeverityLevel string    `json:"severity_level"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateAlertResponse confirms the created alert in both languages
type CreateAlertResponse struct {
	Success      bool         `json:"success"`
	Alert        AlertSummary `json:"alert"`
	Message      string       `json:"message"`
	MessageHindi string       `json:"message_hindi"`
}

// AcknowledgeAlertResponse confirms a responder took ownership of an alert
type AcknowledgeAlertResponse struct {
	Success bool         `json:"success"`
	Alert   AlertSummary `json:"alert"`
}

// OpenAlertsResponse lists a beneficiary's open alerts
type OpenAlertsResponse struct {
	Alerts []AlertSummary `json:"alerts"`
}
