package domain

import "time"

// HeroBackground is one landing-page hero image. At most five exist at a
// time; ordering is oldest first.
type HeroBackground struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (HeroBackground) TableName() string {
	return "hero_backgrounds"
}
