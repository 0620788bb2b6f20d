package repository

import (
	"context"

	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// HeroBackgroundRepository handles hero image data access.
type HeroBackgroundRepository interface {
	List(ctx context.Context) ([]domain.HeroBackground, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.HeroBackground, error)
	Create(ctx context.Context, hero *domain.HeroBackground) error
	Delete(ctx context.Context, id int64) error
}

// GormHeroBackgroundRepository is the GORM implementation of HeroBackgroundRepository.
type GormHeroBackgroundRepository struct {
	db  *gorm.DB
	bus EventBus.Bus
}

// NewGormHeroBackgroundRepository creates a new GORM-based hero background repository.
func NewGormHeroBackgroundRepository(db *gorm.DB, bus EventBus.Bus) *GormHeroBackgroundRepository {
	return &GormHeroBackgroundRepository{db: db, bus: bus}
}

// List returns hero images oldest first.
func (r *GormHeroBackgroundRepository) List(ctx context.Context) ([]domain.HeroBackground, error) {
	var rows []domain.HeroBackground
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *GormHeroBackgroundRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.HeroBackground{}).Count(&n).Error
	return n, err
}

func (r *GormHeroBackgroundRepository) GetByID(ctx context.Context, id int64) (*domain.HeroBackground, error) {
	var hero domain.HeroBackground
	if err := r.db.WithContext(ctx).First(&hero, id).Error; err != nil {
		return nil, err
	}
	return &hero, nil
}

func (r *GormHeroBackgroundRepository) Create(ctx context.Context, hero *domain.HeroBackground) error {
	if err := r.db.WithContext(ctx).Create(hero).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityHero, "created"), hero.ID)
	return nil
}

func (r *GormHeroBackgroundRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.HeroBackground{}, id).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityHero, "deleted"), id)
	return nil
}
