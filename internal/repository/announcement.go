package repository

import (
	"context"

	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// AnnouncementRepository handles announcement data access.
type AnnouncementRepository interface {
	List(ctx context.Context, limit int) ([]domain.Announcement, error)
	GetByID(ctx context.Context, id int64) (*domain.Announcement, error)
	Create(ctx context.Context, announcement *domain.Announcement) error
	Update(ctx context.Context, announcement *domain.Announcement) error
	Delete(ctx context.Context, id int64) error
}

// GormAnnouncementRepository is the GORM implementation of AnnouncementRepository.
type GormAnnouncementRepository struct {
	db  *gorm.DB
	bus EventBus.Bus
}

// NewGormAnnouncementRepository creates a new GORM-based announcement repository.
func NewGormAnnouncementRepository(db *gorm.DB, bus EventBus.Bus) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db, bus: bus}
}

// List returns announcements newest first; limit <= 0 means all.
func (r *GormAnnouncementRepository) List(ctx context.Context, limit int) ([]domain.Announcement, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var rows []domain.Announcement
	err := db.Find(&rows).Error
	return rows, err
}

func (r *GormAnnouncementRepository) GetByID(ctx context.Context, id int64) (*domain.Announcement, error) {
	var announcement domain.Announcement
	if err := r.db.WithContext(ctx).First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *GormAnnouncementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityAnnouncement, "created"), announcement.ID)
	return nil
}

func (r *GormAnnouncementRepository) Update(ctx context.Context, announcement *domain.Announcement) error {
	if err := r.db.WithContext(ctx).Save(announcement).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityAnnouncement, "updated"), announcement.ID)
	return nil
}

func (r *GormAnnouncementRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Announcement{}, id).Error; err != nil {
		return err
	}
	r.bus.Publish(cache.Topic(cache.EntityAnnouncement, "deleted"), id)
	return nil
}
