package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// AlertRepository defines persistence for escalation alerts. Alerts are
// created exclusively by the escalation manager; status transitions out of
// open belong to the downstream responder workflow.
type AlertRepository interface {
	Create(ctx context.Context, alert *entities.Alert) error
	// FindByID returns nil, nil when no alert exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Alert, error)
	// ListOpenByBeneficiary returns open alerts for a beneficiary, newest first.
	ListOpenByBeneficiary(ctx context.Context, beneficiaryID uuid.UUID) ([]entities.Alert, error)
	// UpdateStatus applies an already-validated status transition.
	UpdateStatus(ctx context.Context, alert *entities.Alert) error
}
