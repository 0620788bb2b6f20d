package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// RegistrationRepository handles customer registration submissions.
type RegistrationRepository interface {
	List(ctx context.Context, limit int) ([]domain.CustomerRegistration, error)
	GetByID(ctx context.Context, id int64) (*domain.CustomerRegistration, error)
	Create(ctx context.Context, reg *domain.CustomerRegistration) error
	Delete(ctx context.Context, id int64) error
}

// GormRegistrationRepository is the GORM implementation of RegistrationRepository.
type GormRegistrationRepository struct {
	db *gorm.DB
}

// NewGormRegistrationRepository creates a new GORM-based registration repository.
func NewGormRegistrationRepository(db *gorm.DB) *GormRegistrationRepository {
	return &GormRegistrationRepository{db: db}
}

func (r *GormRegistrationRepository) List(ctx context.Context, limit int) ([]domain.CustomerRegistration, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var rows []domain.CustomerRegistration
	err := db.Find(&rows).Error
	return rows, err
}

func (r *GormRegistrationRepository) GetByID(ctx context.Context, id int64) (*domain.CustomerRegistration, error) {
	var reg domain.CustomerRegistration
	if err := r.db.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *GormRegistrationRepository) Create(ctx context.Context, reg *domain.CustomerRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *GormRegistrationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.CustomerRegistration{}, id).Error
}
