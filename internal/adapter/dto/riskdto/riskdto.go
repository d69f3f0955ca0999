package riskdto

import (
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// RedFlagRequest asks whether reported symptoms are danger signs
type RedFlagRequest struct {
	Symptoms      []string `json:"symptoms" validate:"required,min=1"`
	IsPregnant    bool     `json:"isPregnant,omitempty"`
	PregnancyWeek *int     `json:"pregnancyWeek,omitempty"`
	UserID        string   `json:"user_id,omitempty"`
}

// RedFlagResponse spreads the classifier verdict plus the escalation result
type RedFlagResponse struct {
	IsRedFlag         bool                     `json:"is_red_flag"`
	RiskScore         float64                  `json:"risk_score"`
	Reasons           []string                 `json:"reasons"`
	RecommendedAction string                   `json:"recommended_action"`
	RiskAssessment    *entities.RiskAssessment `json:"risk_assessment,omitempty"`
	AlertCreated      bool                     `json:"alert_created"`
	AlertID           *string                  `json:"alert_id,omitempty"`
}
