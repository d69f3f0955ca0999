package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// HealthLogRepository defines read access to beneficiary health logs.
type HealthLogRepository interface {
	// ListRecent returns the most recent logs for a beneficiary, newest
	// first, bounded by limit.
	ListRecent(ctx context.Context, beneficiaryID uuid.UUID, limit int) ([]entities.HealthLog, error)
}

// VisitRepository defines read access to home visit records.
type VisitRepository interface {
	// ListRecent returns the most recent visits for a beneficiary, newest
	// first, bounded by limit.
	ListRecent(ctx context.Context, beneficiaryID uuid.UUID, limit int) ([]entities.Visit, error)
}
