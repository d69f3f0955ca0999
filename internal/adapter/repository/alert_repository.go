package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// AlertRepository handles alert persistence against Postgres.
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create persists a new alert
func (r *AlertRepository) Create(ctx context.Context, alert *entities.Alert) error {
	if alert == nil {
		return errors.New("alert cannot be nil")
	}
	return r.db.WithContext(ctx).Create(alert).Error
}

// FindByID retrieves an alert by ID
func (r *AlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Alert, error) {
	var alert entities.Alert
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

// ListOpenByBeneficiary retrieves open alerts for a beneficiary, newest first
func (r *AlertRepository) ListOpenByBeneficiary(ctx context.Context, beneficiaryID uuid.UUID) ([]entities.Alert, error) {
	var alerts []entities.Alert
	if err := r.db.WithContext(ctx).
		Where("beneficiary_id = ? AND status = ?", beneficiaryID, entities.AlertStatusOpen).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// UpdateStatus persists an alert status transition
func (r *AlertRepository) UpdateStatus(ctx context.Context, alert *entities.Alert) error {
	if alert == nil {
		return errors.New("alert cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Alert{}).
		Where("id = ?", alert.ID).
		Updates(map[string]interface{}{
			"status":          alert.Status,
			"acknowledged_at": alert.AcknowledgedAt,
			"resolved_at":     alert.ResolvedAt,
			"updated_at":      time.Now(),
		}).Error
}
