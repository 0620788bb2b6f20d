package domain

import "time"

// Product is a catalog item, optionally owned by a principal.
type Product struct {
	ID          int64       `gorm:"primaryKey" json:"id,string" form:"id"`
	Name        string      `gorm:"index" json:"name" form:"name"`
	ProductType ProductType `gorm:"size:32;index" json:"product_type" form:"product_type"`
	Description string      `json:"description" form:"description"`
	Images      StringList  `gorm:"type:text" json:"images" form:"images"`
	Features    StringList  `gorm:"type:text" json:"features" form:"features"`
	IsFeatured  bool        `gorm:"index" json:"is_featured" form:"is_featured"`
	PrincipalID *int64      `gorm:"index" json:"principal_id" form:"principal_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
