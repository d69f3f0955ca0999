package visit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
	"github.com/sehatsaathi/voicecare/internal/domain/repositories"
)

// caseloadPageSize bounds the lookup to the worker's first page of
// beneficiaries
const caseloadPageSize = 20

// Resolver matches an extracted patient name against a worker's caseload.
// Resolution only reads; it never mutates the caseload.
type Resolver struct {
	beneficiaries repositories.BeneficiaryRepository
	matcher       Matcher
	logger        *zap.Logger
}

// NewResolver creates a resolver with the given matching strategy
func NewResolver(beneficiaries repositories.BeneficiaryRepository, matcher Matcher, logger *zap.Logger) *Resolver {
	if matcher == nil {
		matcher = NewSubstringMatcher()
	}
	return &Resolver{
		beneficiaries: beneficiaries,
		matcher:       matcher,
		logger:        logger,
	}
}

// Resolve looks the extracted name up in the worker's caseload. An absent
// name short-circuits without a store lookup. One match resolves; several
// matches come back as ambiguous candidates in store order.
func (r *Resolver) Resolve(ctx context.Context, extracted entities.ExtractedVisit, workerID uuid.UUID) (entities.Resolution, error) {
	if !extracted.HasPatientName() {
		return entities.Resolution{Outcome: entities.ResolutionNoNameExtracted}, nil
	}

	caseload, err := r.beneficiaries.ListByWorker(ctx, workerID, caseloadPageSize)
	if err != nil {
		return entities.Resolution{}, apperrors.ErrStoreFailed("list caseload", err)
	}

	matches := r.matcher.Match(*extracted.PatientName, caseload)
	switch len(matches) {
	case 0:
		if r.logger != nil {
			r.logger.Info("🔍 No caseload match for extracted name",
				zap.String("worker_id", workerID.String()))
		}
		return entities.Resolution{Outcome: entities.ResolutionNotFound}, nil
	case 1:
		b := matches[0]
		return entities.Resolution{
			Outcome:     entities.ResolutionResolved,
			Beneficiary: &b,
		}, nil
	default:
		if r.logger != nil {
			r.logger.Info("🔍 Ambiguous caseload match",
				zap.String("worker_id", workerID.String()),
				zap.Int("candidates", len(matches)))
		}
		return entities.Resolution{
			Outcome:    entities.ResolutionAmbiguous,
			Candidates: matches,
		}, nil
	}
}

// NeedsManualReview reports whether a processed report requires a human to
// attach it to the right beneficiary: a name was spoken but nobody was
// unambiguously resolved.
func NeedsManualReview(extracted entities.ExtractedVisit, resolution entities.Resolution) bool {
	return extracted.HasPatientName() && !resolution.Resolved()
}
