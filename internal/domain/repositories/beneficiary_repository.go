package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// BeneficiaryRepository defines read access to the beneficiary store. The
// voice pipeline never writes beneficiaries.
type BeneficiaryRepository interface {
	// FindByID returns nil, nil when no beneficiary exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Beneficiary, error)
	// FindByUserID resolves a beneficiary by her upstream identity.
	FindByUserID(ctx context.Context, userID string) (*entities.Beneficiary, error)
	// ListByWorker returns the worker's assigned caseload, bounded by limit,
	// in store order.
	ListByWorker(ctx context.Context, workerID uuid.UUID, limit int) ([]entities.Beneficiary, error)
}

// WorkerRepository defines read access to worker profiles.
type WorkerRepository interface {
	// FindByID returns nil, nil when no worker exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Worker, error)
	// FindByUserID resolves a worker profile by upstream identity; returns
	// nil, nil when the caller has no profile.
	FindByUserID(ctx context.Context, userID string) (*entities.Worker, error)
}
