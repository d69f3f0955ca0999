package visit

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// Completer is the language-model backend used for extraction
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

const extractionSystemPrompt = `You are a medical data extraction assistant for community health workers in rural India.
Given a spoken visit report (Hindi, English, or mixed), extract structured visit data.
Respond with ONLY a JSON object in this exact shape:
{
  "patient_name": string or null,
  "symptoms": [string],
  "vitals": {"systolic": number or null, "diastolic": number or null, "weight_kg": number or null, "temperature_c": number or null},
  "services_provided": [string],
  "extraction_confidence": number between 0 and 1 or null
}
Use null for anything not mentioned. Do not invent values. Do not add commentary.`

// Extractor turns a visit transcript into structured fields via the
// language-model backend. Parsing is best-effort: a malformed model
// response yields an empty record, never an error.
type Extractor struct {
	llm    Completer
	logger *zap.Logger
}

// NewExtractor creates an extractor backed by the given completer
func NewExtractor(llm Completer, logger *zap.Logger) *Extractor {
	return &Extractor{llm: llm, logger: logger}
}

// Extract sends the transcript to the model and parses the response.
// Backend failures propagate; parse failures soft-fail to an empty record.
func (e *Extractor) Extract(ctx context.Context, transcript string) (entities.ExtractedVisit, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return entities.EmptyExtractedVisit(), apperrors.ErrInvalidInput("Transcript is empty")
	}

	content, err := e.llm.Complete(ctx, extractionSystemPrompt, transcript, 0.1)
	if err != nil {
		return entities.EmptyExtractedVisit(), apperrors.ErrExtractionFailed(err)
	}

	visit, parsed := parseVisit(content)
	if !parsed {
		if e.logger != nil {
			e.logger.Warn("⚠️ Unparseable extraction response, returning empty record",
				zap.Int("response_len", len(content)))
		}
		return entities.EmptyExtractedVisit(), nil
	}

	if e.logger != nil {
		e.logger.Info("📋 Visit fields extracted",
			zap.Bool("has_patient_name", visit.HasPatientName()),
			zap.Int("symptoms", len(visit.Symptoms)))
	}
	return visit, nil
}

// parseVisit parses a model response, reporting whether it was usable.
// The bool keeps the parsed/unparseable distinction observable even
// though callers collapse both into a record.
func parseVisit(content string) (entities.ExtractedVisit, bool) {
	var visit entities.ExtractedVisit
	if err := json.Unmarshal([]byte(extractJSON(content)), &visit); err != nil {
		return entities.EmptyExtractedVisit(), false
	}

	if visit.Symptoms == nil {
		visit.Symptoms = []string{}
	}
	if visit.ServicesProvided == nil {
		visit.ServicesProvided = []string{}
	}
	if visit.PatientName != nil && strings.TrimSpace(*visit.PatientName) == "" {
		visit.PatientName = nil
	}
	if visit.ExtractionConfidence != nil {
		c := *visit.ExtractionConfidence
		if c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
		visit.ExtractionConfidence = &c
	}
	return visit, true
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
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
