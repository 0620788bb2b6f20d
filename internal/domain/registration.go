package domain

import "time"

// CustomerRegistration is a public interest submission. It is never mutated
// after creation, only deleted by admins.
type CustomerRegistration struct {
	ID               int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	EntryNumber      string    `gorm:"size:16" json:"entry_number" form:"entry_number"`
	Name             string    `json:"name" form:"name"`
	Hospital         string    `json:"hospital" form:"hospital"`
	Address          string    `json:"address" form:"address"`
	Position         string    `json:"position" form:"position"`
	ContactNumber    string    `gorm:"size:16" json:"contact_number" form:"contact_number"`
	Email            string    `gorm:"size:255" json:"email" form:"email"`
	ProductsInterest string    `json:"products_interest" form:"products_interest"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CustomerRegistration) TableName() string {
	return "customer_registrations"
}
