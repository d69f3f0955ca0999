package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// Completer is the language-model backend used for symptom classification
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

const classifierSystemPrompt = `You are a maternal and child health triage assistant for rural India.
Given reported symptoms and pregnancy context, decide whether they are danger signs needing urgent escalation.
Respond with ONLY a JSON object:
{
  "is_red_flag": boolean,
  "risk_score": number between 0 and 100,
  "reasons": [string],
  "recommended_action": string
}
Treat heavy bleeding, severe headache with blurred vision, convulsions, high fever, and reduced fetal movement as danger signs. Do not add commentary.`

// Classifier asks the model whether reported symptoms are danger signs. It
// trusts the model's boolean but enforces structural guarantees on the
// rest of the result.
type Classifier struct {
	llm    Completer
	logger *zap.Logger
}

// NewClassifier creates a classifier backed by the given completer
func NewClassifier(llm Completer, logger *zap.Logger) *Classifier {
	return &Classifier{llm: llm, logger: logger}
}

// ClassifyInput is the context given to the model alongside the symptoms
type ClassifyInput struct {
	Symptoms      []string
	IsPregnant    bool
	PregnancyWeek *int
}

// Classify returns the model's red-flag verdict. An empty symptom list
// short-circuits to a non-flag result without a model call.
func (c *Classifier) Classify(ctx context.Context, input ClassifyInput) (entities.RedFlagResult, error) {
	if len(input.Symptoms) == 0 {
		return entities.RedFlagResult{
			IsRedFlag: false,
			RiskScore: 0,
			Reasons:   []string{},
		}, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Symptoms: %s\n", strings.Join(input.Symptoms, ", "))
	fmt.Fprintf(&sb, "Pregnant: %t\n", input.IsPregnant)
	if input.PregnancyWeek != nil {
		fmt.Fprintf(&sb, "Pregnancy week: %d\n", *input.PregnancyWeek)
	}

	content, err := c.llm.Complete(ctx, classifierSystemPrompt, sb.String(), 0.1)
	if err != nil {
		return entities.RedFlagResult{}, apperrors.ErrClassificationFailed(err)
	}

	var result entities.RedFlagResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		return entities.RedFlagResult{}, apperrors.ErrClassificationFailed(fmt.Errorf("unparseable classifier response: %w", err))
	}

	// Structural guarantees the caller can rely on
	if result.RiskScore < 0 {
		result.RiskScore = 0
	} else if result.RiskScore > 100 {
		result.RiskScore = 100
	}
	if result.Reasons == nil {
		result.Reasons = []string{}
	}
	if result.IsRedFlag && len(result.Reasons) == 0 {
		result.Reasons = []string{"Reported symptoms classified as danger signs"}
	}

	if c.logger != nil {
		c.logger.Info("🚩 Symptom classification complete",
			zap.Bool("is_red_flag", result.IsRedFlag),
			zap.Float64("risk_score", result.RiskScore))
	}
	return result, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
