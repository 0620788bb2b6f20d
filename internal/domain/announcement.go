package domain

import "time"

// Announcement is a short public notice.
type Announcement struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Title       string    `gorm:"index" json:"title" form:"title"`
	Description string    `json:"description" form:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Announcement) TableName() string {
	return "announcements"
}
