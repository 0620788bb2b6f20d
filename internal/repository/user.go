package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// UserQuery filters the account listing.
type UserQuery struct {
	Search string
	// ExcludeRole hides accounts of a given role, used so plain admins
	// never see system_admin rows.
	ExcludeRole domain.UserRole
	Page        int
	PerPage     int
}

// UserRepository handles account data access.
type UserRepository interface {
	List(ctx context.Context, q UserQuery) ([]domain.User, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// GormUserRepository is the GORM implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) List(ctx context.Context, q UserQuery) ([]domain.User, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.User{})
	if q.ExcludeRole != "" {
		db = db.Where("role != ?", q.ExcludeRole)
	}
	if q.Search != "" {
		pattern := searchPattern(q.Search)
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.PerPage <= 0 {
		q.PerPage = 10
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	var rows []domain.User
	err := db.Order("created_at DESC").
		Offset((q.Page - 1) * q.PerPage).Limit(q.PerPage).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}
