package domain

import "time"

// Principal is a brand partner that owns zero or more products.
type Principal struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `json:"description" form:"description"`
	Logo        string    `gorm:"size:1024" json:"logo" form:"logo"`
	IsFeatured  bool      `gorm:"index" json:"is_featured" form:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Principal) TableName() string {
	return "principals"
}
