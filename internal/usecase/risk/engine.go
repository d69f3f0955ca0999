package risk

import (
	"fmt"
	"time"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// Engine computes the deterministic weighted risk score from a beneficiary
// profile, recent health logs, and visit history. No model calls; the same
// inputs always produce the same assessment.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a risk engine
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Assess computes the additive score. Factors are evaluated in a fixed
// order and each triggered factor appends one reason line, so reasons are
// reproducible for the same inputs.
func (e *Engine) Assess(beneficiary entities.Beneficiary, logs []entities.HealthLog, visits []entities.Visit) entities.RiskAssessment {
	score := 0.0
	var reasons []string

	if beneficiary.IsHighRisk {
		score += 30
		reasons = append(reasons, "Profile flagged high-risk")
	}

	switch beneficiary.AnemiaStatus {
	case entities.AnemiaStatusSevere:
		score += 25
		reasons = append(reasons, "Severe anemia")
	case entities.AnemiaStatusModerate:
		score += 15
		reasons = append(reasons, "Moderate anemia")
	}

	if beneficiary.PreviousComplications != nil && *beneficiary.PreviousComplications != "" {
		score += 20
		reasons = append(reasons, "Previous complications on record")
	}

	if beneficiary.LastHemoglobinLevel != nil {
		hb := *beneficiary.LastHemoglobinLevel
		if hb < 8 {
			score += 25
			reasons = append(reasons, fmt.Sprintf("Hemoglobin critically low (%.1f)", hb))
		} else if hb < 10 {
			score += 15
			reasons = append(reasons, fmt.Sprintf("Hemoglobin low (%.1f)", hb))
		}
	}

	for _, log := range logs {
		if log.IsRedFlag {
			score += 15
			reasons = append(reasons, fmt.Sprintf("Red-flag symptom logged on %s", log.LoggedAt.Format("2006-01-02")))
		}
	}

	for _, log := range logs {
		if log.Severity == entities.SeveritySevere {
			score += 10
			reasons = append(reasons, fmt.Sprintf("Severe symptoms logged on %s", log.LoggedAt.Format("2006-01-02")))
		}
	}

	if last := lastCompletedVisit(visits); last != nil {
		days := int(e.now().Sub(*last).Hours() / 24)
		if days > 60 {
			score += 40
			reasons = append(reasons, fmt.Sprintf("No visit in %d days", days))
		} else if days > 30 {
			score += 20
			reasons = append(reasons, fmt.Sprintf("Last visit %d days ago", days))
		}
	} else {
		// No completed visit and no visit at all score the same
		score += 30
		reasons = append(reasons, "No completed visit on record")
	}

	if avg, ok := averageAIRisk(logs); ok {
		score += avg * 0.30
		reasons = append(reasons, fmt.Sprintf("Recent symptom analysis averaged %.0f risk", avg))
	}

	final := clampScore(score)
	return entities.RiskAssessment{
		Score:   final,
		Level:   entities.RiskLevelForScore(final),
		Reasons: reasons,
	}
}

// lastCompletedVisit returns the newest completion timestamp, or nil when
// no visit has one
func lastCompletedVisit(visits []entities.Visit) *time.Time {
	var last *time.Time
	for i := range visits {
		c := visits[i].CompletedAt
		if c == nil {
			continue
		}
		if last == nil || c.After(*last) {
			last = c
		}
	}
	return last
}

// averageAIRisk averages classifier scores attached to recent logs
func averageAIRisk(logs []entities.HealthLog) (float64, bool) {
	var sum float64
	var n int
	for _, log := range logs {
		if log.AIRiskScore != nil {
			sum += *log.AIRiskScore
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
