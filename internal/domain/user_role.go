package domain

// UserRole is the closed set of account roles. system_admin outranks admin,
// admin outranks staff.
type UserRole string

const (
	RoleSystemAdmin UserRole = "system_admin"
	RoleAdmin       UserRole = "admin"
	RoleStaff       UserRole = "staff"
)

// UserRoles returns all roles in rank order, highest first.
func UserRoles() []UserRole {
	return []UserRole{RoleSystemAdmin, RoleAdmin, RoleStaff}
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSystemAdmin, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// DisplayName returns the human readable label for the role.
func (r UserRole) DisplayName() string {
	switch r {
	case RoleSystemAdmin:
		return "System Admin"
	case RoleAdmin:
		return "Admin"
	case RoleStaff:
		return "Staff"
	default:
		return string(r)
	}
}

// HasAdminPrivileges reports whether the role may manage content and users.
func (r UserRole) HasAdminPrivileges() bool {
	return r == RoleSystemAdmin || r == RoleAdmin
}
