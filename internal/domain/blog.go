package domain

import "time"

// Blog is a marketing article with up to five attached images.
type Blog struct {
	ID        int64      `gorm:"primaryKey" json:"id,string" form:"id"`
	Title     string     `gorm:"index" json:"title" form:"title"`
	Content   string     `json:"content" form:"content"`
	Images    StringList `gorm:"type:text" json:"images" form:"images"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Blog) TableName() string {
	return "blogs"
}
