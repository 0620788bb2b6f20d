package repository

import (
	"context"

	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// ProductRepository handles product data access.
type ProductRepository interface {
	List(ctx context.Context, q ListQuery) ([]domain.Product, int64, error)
	Latest(ctx context.Context, limit int) ([]domain.Product, error)
	Featured(ctx context.Context, limit int) ([]domain.Product, error)
	ByPrincipal(ctx context.Context, principalID int64) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// GormProductRepository is the GORM implementation of ProductRepository.
type GormProductRepository struct {
	db  *gorm.DB
	bus EventBus.Bus
}

// NewGormProductRepository creates a new GORM-based product repository.
func NewGormProductRepository(db *gorm.DB, bus EventBus.Bus) *GormProductRepository {
	return &GormProductRepository{db: db, bus: bus}
}

func (r *GormProductRepository) List(ctx context.Context, q ListQuery) ([]domain.Product, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Product{})
	if q.Search != "" {
		pattern := searchPattern(q.Search)
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if q.ProductType != "" {
		db = db.Where("product_type = ?", q.ProductType)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.Product
	db = applySort(db, q.SortBy, q.SortOrder, map[string]bool{
		"created_at": true, "updated_at": true, "name": true,
	})
	if err := db.Offset(q.Offset()).Limit(q.PerPage).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormProductRepository) Latest(ctx context.Context, limit int) ([]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *GormProductRepository) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).Where("is_featured = ?", true).
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *GormProductRepository) ByPrincipal(ctx context.Context, principalID int64) ([]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).Where("principal_id = ?", principalID).
		Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityProduct, "created"), product.ID)
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityProduct, "updated"), product.ID)
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityProduct, "deleted"), id)
	return nil
}
