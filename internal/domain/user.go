package domain

import "time"

// User is an admin-console account.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email" form:"email"`
	Password  string    `json:"-" form:"-"`
	Role      UserRole  `gorm:"size:32;index" json:"role" form:"role"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

// IsSystemAdmin reports whether the account holds the top role.
func (u *User) IsSystemAdmin() bool {
	return u.Role == RoleSystemAdmin
}

// IsAdmin reports whether the account holds the admin role (not system_admin).
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
