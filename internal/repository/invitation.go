package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// InvitationRepository handles registration invitations.
type InvitationRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Invitation, error)
	Create(ctx context.Context, inv *domain.Invitation) error
	MarkUsed(ctx context.Context, inv *domain.Invitation) error
	DeleteExpired(ctx context.Context, cutoff time.Time) error
}

// GormInvitationRepository is the GORM implementation of InvitationRepository.
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewGormInvitationRepository creates a new GORM-based invitation repository.
func NewGormInvitationRepository(db *gorm.DB) *GormInvitationRepository {
	return &GormInvitationRepository{db: db}
}

func (r *GormInvitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *GormInvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *GormInvitationRepository) MarkUsed(ctx context.Context, inv *domain.Invitation) error {
	err := r.db.WithContext(ctx).Model(inv).Update("used", true).Error
	if err == nil {
		inv.Used = true
	}
	return err
}

func (r *GormInvitationRepository) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ? OR used = ?", cutoff, true).
		Delete(&domain.Invitation{}).Error
}
