package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// HealthLogRepository handles health log reads against Postgres.
type HealthLogRepository struct {
	db *gorm.DB
}

// NewHealthLogRepository creates a new health log repository
func NewHealthLogRepository(db *gorm.DB) *HealthLogRepository {
	return &HealthLogRepository{db: db}
}

// ListRecent retrieves the most recent health logs for a beneficiary
func (r *HealthLogRepository) ListRecent(ctx context.Context, beneficiaryID uuid.UUID, limit int) ([]entities.HealthLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var logs []entities.HealthLog
	if err := r.db.WithContext(ctx).
		Where("beneficiary_id = ?", beneficiaryID).
		Order("logged_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// VisitRepository handles visit reads against Postgres.
type VisitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// ListRecent retrieves the most recent visits for a beneficiary
func (r *VisitRepository) ListRecent(ctx context.Context, beneficiaryID uuid.UUID, limit int) ([]entities.Visit, error) {
	if limit <= 0 {
		limit = 10
	}
	var visits []entities.Visit
	if err := r.db.WithContext(ctx).
		Where("beneficiary_id = ?", beneficiaryID).
		Order("created_at DESC").
		Limit(limit).
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}
