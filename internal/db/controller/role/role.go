// Package role provides the gorm backed persistence of roles.
package role

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/roleadmin/roleadmin/internal/db/models"
)

var (
	// ErrRoleNotFound is returned when no role has the requested id.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when a role without name should be stored.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrSystemRole is returned when a system role should be deleted.
	ErrSystemRole = errors.New("system roles can not be deleted")
	// ErrRoleInUse is returned when users still have the role that should be deleted.
	ErrRoleInUse = errors.New("role is assigned to users")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Find loads a role by id.
func Find(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Role
	if err := db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, err
	}

	return &r, nil
}

// NameTaken reports whether another role already uses name. excludeID skips the role being edited.
func NameTaken(db *gorm.DB, name string, excludeID uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	q := db.Model(&models.Role{}).Where("name = ?", strings.TrimSpace(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}

	return n > 0, nil
}

// Create inserts a new role.
func Create(db *gorm.DB, r *models.Role) error {
	if db == nil {
		return ErrDBNil
	}

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return ErrRoleNameEmpty
	}

	return db.Create(r).Error
}

// Save updates an existing role.
func Save(db *gorm.DB, r *models.Role) error {
	if db == nil {
		return ErrDBNil
	}

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return ErrRoleNameEmpty
	}

	if r.IsNew() {
		return ErrRoleNotFound
	}

	return db.Save(r).Error
}

// Delete removes the role with its permission assignments in one transaction.
// A missing role yields ErrRoleNotFound, system roles ErrSystemRole and roles
// still assigned to users ErrRoleInUse. The role is returned with the last two.
func Delete(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var deleted *models.Role

	err := db.Transaction(func(tx *gorm.DB) error {
		r, err := Find(tx, id)
		if err != nil {
			return err
		}

		deleted = r

		if r.IsSystem {
			return ErrSystemRole
		}

		var users int64
		if err := tx.Model(&models.User{}).Where("role_id = ?", r.ID).Count(&users).Error; err != nil {
			return err
		}

		if users > 0 {
			return ErrRoleInUse
		}

		if err := tx.Where("role_id = ?", r.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		return tx.Delete(r).Error
	})

	return deleted, err
}
