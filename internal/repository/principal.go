package repository

import (
	"context"

	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// PrincipalRepository handles brand partner data access.
type PrincipalRepository interface {
	All(ctx context.Context) ([]domain.Principal, error)
	Featured(ctx context.Context) ([]domain.Principal, error)
	GetByID(ctx context.Context, id int64) (*domain.Principal, error)
	Create(ctx context.Context, principal *domain.Principal) error
	Update(ctx context.Context, principal *domain.Principal) error
	Delete(ctx context.Context, id int64) error
}

// GormPrincipalRepository is the GORM implementation of PrincipalRepository.
type GormPrincipalRepository struct {
	db  *gorm.DB
	bus EventBus.Bus
}

// NewGormPrincipalRepository creates a new GORM-based principal repository.
func NewGormPrincipalRepository(db *gorm.DB, bus EventBus.Bus) *GormPrincipalRepository {
	return &GormPrincipalRepository{db: db, bus: bus}
}

func (r *GormPrincipalRepository) All(ctx context.Context) ([]domain.Principal, error) {
	var rows []domain.Principal
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *GormPrincipalRepository) Featured(ctx context.Context) ([]domain.Principal, error) {
	var rows []domain.Principal
	err := r.db.WithContext(ctx).Where("is_featured = ?", true).
		Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *GormPrincipalRepository) GetByID(ctx context.Context, id int64) (*domain.Principal, error) {
	var principal domain.Principal
	if err := r.db.WithContext(ctx).First(&principal, id).Error; err != nil {
		return nil, err
	}
	return &principal, nil
}

func (r *GormPrincipalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	if err := r.db.WithContext(ctx).Create(principal).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityPrincipal, "created"), principal.ID)
	return nil
}

func (r *GormPrincipalRepository) Update(ctx context.Context, principal *domain.Principal) error {
	if err := r.db.WithContext(ctx).Save(principal).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityPrincipal, "updated"), principal.ID)
	return nil
}

// Delete removes the principal and, in the same transaction, detaches its
// products by nulling their principal reference.
func (r *GormPrincipalRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Product{}).
			Where("principal_id = ?", id).
			Update("principal_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Principal{}, id).Error
	})
	if err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityPrincipal, "deleted"), id)
	return nil
}
