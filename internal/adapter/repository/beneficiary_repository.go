package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// BeneficiaryRepository handles beneficiary reads against Postgres.
type BeneficiaryRepository struct {
	db *gorm.DB
}

// NewBeneficiaryRepository creates a new beneficiary repository
func NewBeneficiaryRepository(db *gorm.DB) *BeneficiaryRepository {
	return &BeneficiaryRepository{db: db}
}

// FindByID retrieves a beneficiary by ID
func (r *BeneficiaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Beneficiary, error) {
	var b entities.Beneficiary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// FindByUserID retrieves a beneficiary by upstream user identity
func (r *BeneficiaryRepository) FindByUserID(ctx context.Context, userID string) (*entities.Beneficiary, error) {
	var b entities.Beneficiary
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// ListByWorker retrieves the caseload assigned to a worker, in store order
func (r *BeneficiaryRepository) ListByWorker(ctx context.Context, workerID uuid.UUID, limit int) ([]entities.Beneficiary, error) {
	if limit <= 0 {
		limit = 20
	}
	var caseload []entities.Beneficiary
	if err := r.db.WithContext(ctx).
		Where("assigned_worker_id = ?", workerID).
		Order("created_at ASC").
		Limit(limit).
		Find(&caseload).Error; err != nil {
		return nil, err
	}
	return caseload, nil
}

// WorkerRepository handles worker profile reads against Postgres.
type WorkerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new worker repository
func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// FindByID retrieves a worker by ID
func (r *WorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Worker, error) {
	var w entities.Worker
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// FindByUserID retrieves a worker profile by upstream user identity
func (r *WorkerRepository) FindByUserID(ctx context.Context, userID string) (*entities.Worker, error) {
	var w entities.Worker
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}
