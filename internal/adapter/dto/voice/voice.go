package voice

import (
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// TranscribeResponse is the success body for a transcription request
type TranscribeResponse struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// ProcessRequest asks for structured extraction from a transcript
type ProcessRequest struct {
	Transcription string `json:"transcription" validate:"required"`
	AshaWorkerID  string `json:"asha_worker_id,omitempty"`
}

// BeneficiarySummary is the caller-facing view of a resolved beneficiary
type BeneficiarySummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Village string `json:"village,omitempty"`
}

// ProcessResponse is the structured outcome of one transcript
type ProcessResponse struct {
	ExtractedData     entities.ExtractedVisit `json:"extracted_data"`
	Beneficiary       *BeneficiarySummary     `json:"beneficiary"`
	Candidates        []BeneficiarySummary    `json:"candidates,omitempty"`
	Transcription     string                  `json:"transcription"`
	NeedsManualReview bool                    `json:"needs_manual_review"`
}

// SummaryFor converts a beneficiary entity for the response
func SummaryFor(b entities.Beneficiary) BeneficiarySummary {
	return BeneficiarySummary{
		ID:      b.ID.String(),
		Name:    b.Name,
		Village: b.Village,
	}
}
