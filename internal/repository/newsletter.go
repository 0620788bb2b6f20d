package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// NewsletterRepository handles subscription data access.
type NewsletterRepository interface {
	List(ctx context.Context, limit int) ([]domain.NewsletterSubscription, error)
	Active(ctx context.Context) ([]domain.NewsletterSubscription, error)
	GetByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error)
	GetByToken(ctx context.Context, token string) (*domain.NewsletterSubscription, error)
	Create(ctx context.Context, sub *domain.NewsletterSubscription) error
	MarkUnsubscribed(ctx context.Context, sub *domain.NewsletterSubscription, at time.Time) error
}

// GormNewsletterRepository is the GORM implementation of NewsletterRepository.
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewGormNewsletterRepository creates a new GORM-based subscription repository.
func NewGormNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

func (r *GormNewsletterRepository) List(ctx context.Context, limit int) ([]domain.NewsletterSubscription, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var rows []domain.NewsletterSubscription
	err := db.Find(&rows).Error
	return rows, err
}

// Active returns subscribers that have not opted out, for notification sends.
func (r *GormNewsletterRepository) Active(ctx context.Context) ([]domain.NewsletterSubscription, error) {
	var rows []domain.NewsletterSubscription
	err := r.db.WithContext(ctx).Where("unsubscribed_at IS NULL").Find(&rows).Error
	return rows, err
}

func (r *GormNewsletterRepository) GetByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	var sub domain.NewsletterSubscription
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormNewsletterRepository) GetByToken(ctx context.Context, token string) (*domain.NewsletterSubscription, error) {
	var sub domain.NewsletterSubscription
	if err := r.db.WithContext(ctx).Where("unsubscribe_token = ?", token).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormNewsletterRepository) Create(ctx context.Context, sub *domain.NewsletterSubscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *GormNewsletterRepository) MarkUnsubscribed(ctx context.Context, sub *domain.NewsletterSubscription, at time.Time) error {
	err := r.db.WithContext(ctx).Model(sub).
		Update("unsubscribed_at", at).Error
	if err == nil {
		sub.UnsubscribedAt = &at
	}
	return err
}
