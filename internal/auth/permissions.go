package auth

// Permission constants used for role-based access control.
const (
	// PermSuperAdmin grants everything below the settings panel, including role management.
	PermSuperAdmin = "admin.super"
	// PermAdminRoles allows managing roles.
	PermAdminRoles = "admin.roles"
	// PermAdminUsers allows managing user accounts.
	PermAdminUsers = "admin.users"
)

// Definition describes a permission for seeding.
type Definition struct {
	Name        string
	Description string
}

// Definitions lists every permission known to the application.
func Definitions() []Definition {
	return []Definition{
		{Name: PermSuperAdmin, Description: "Super administrator"},
		{Name: PermAdminRoles, Description: "Manage roles"},
		{Name: PermAdminUsers, Description: "Manage user accounts"},
	}
}
