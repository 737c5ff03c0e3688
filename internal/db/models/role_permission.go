package models

// RolePermission joins roles and permissions, rows go away with either side.
type RolePermission struct {
	RoleID       uint       `gorm:"primaryKey;column:role_id"`
	PermissionID uint       `gorm:"primaryKey;column:permission_id"`
	Role         Role       `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	Permission   Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name independent of gorm naming strategies.
func (RolePermission) TableName() string {
	return "role_permissions"
}
