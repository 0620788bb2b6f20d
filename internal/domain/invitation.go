package domain

import "time"

// Invitation is a single-use capability token for self-service registration.
type Invitation struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Email     string    `gorm:"index;size:255" json:"email" form:"email"`
	Token     string    `gorm:"uniqueIndex;size:64" json:"-"`
	Role      UserRole  `gorm:"size:32" json:"role" form:"role"`
	InviterID int64     `gorm:"index" json:"inviter_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Invitation) TableName() string {
	return "invitations"
}

// Usable reports whether the invitation can still be redeemed at t.
func (i *Invitation) Usable(t time.Time) bool {
	return !i.Used && t.Before(i.ExpiresAt)
}
