package models

import "time"

// SuperAdminRole is the seeded system role holding every permission.
const SuperAdminRole = "ROLE_SUPER_ADMIN"

// Role is a named permission label, e.g. ROLE_EDITOR.
type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"size:255"`
	// IsSystem marks seeded roles, these are never deleted through the panel.
	IsSystem  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table name independent of gorm naming strategies.
func (Role) TableName() string {
	return "roles"
}

// NewRole returns the transient role bound to an empty add form.
func NewRole() *Role {
	return &Role{}
}

// IsNew reports whether the role was not persisted yet.
func (r *Role) IsNew() bool {
	return r.ID == 0
}
