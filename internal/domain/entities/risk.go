package entities

// RiskLevel is the banded form of a deterministic risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// RiskLevelForScore maps a clamped score to its band. The mapping is a fixed
// step function: >=70 critical, >=50 high, >=30 medium, else low.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelCritical
	case score >= 50:
		return RiskLevelHigh
	case score >= 30:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// RiskAssessment is the output of the deterministic weighted risk engine.
// Score is always clamped to [0,100]; Reasons holds one human-readable line
// per contributing factor, in evaluation order. Computed fresh per request
// and never persisted by this component.
type RiskAssessment struct {
	Score   int       `json:"score"`
	Level   RiskLevel `json:"level"`
	Reasons []string  `json:"reasons"`
}

// RedFlagResult is the output of the model-mediated danger-sign classifier.
// RiskScore is the classifier's own 0..100 scale, independent from the
// deterministic engine's score.
type RedFlagResult struct {
	IsRedFlag         bool     `json:"is_red_flag"`
	RiskScore         float64  `json:"risk_score"`
	Reasons           []string `json:"reasons"`
	RecommendedAction string   `json:"recommended_action"`
}
