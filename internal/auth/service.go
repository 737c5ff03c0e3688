package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/roleadmin/roleadmin/internal/db/models"
	"github.com/roleadmin/roleadmin/internal/web/session"
)

// Service provides authorization over the role permissions of a user.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) permissionsOf(userID uint64) *gorm.DB {
	return s.db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND users.active = ?", userID, true)
}

// HasPermission checks if the role of an active user carries permission.
func (s *Service) HasPermission(userID uint64, permission string) (bool, error) {
	var count int64

	err := s.permissionsOf(userID).
		Where("permissions.name = ?", permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return count > 0, nil
}

// GetUserPermissions retrieves all permission names of a user.
func (s *Service) GetUserPermissions(userID uint64) ([]string, error) {
	var permissions []string

	err := s.permissionsOf(userID).
		Distinct("permissions.name").
		Order("permissions.name").
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}

// GrantAll assigns every stored permission to role.
func (s *Service) GrantAll(roleID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var perms []models.Permission
		if err := tx.Find(&perms).Error; err != nil {
			return err
		}

		for _, p := range perms {
			rp := models.RolePermission{RoleID: roleID, PermissionID: p.ID}
			if err := tx.Where(&rp).FirstOrCreate(&rp).Error; err != nil {
				return fmt.Errorf("failed to grant %s: %w", p.Name, err)
			}
		}

		return nil
	})
}

// DenyAccessUnlessGranted returns ErrUnauthenticated without session user and an
// *AccessDeniedError when the user lacks permission.
func (s *Service) DenyAccessUnlessGranted(c *fiber.Ctx, permission string) error {
	data, _, err := session.FromCtx(c)
	if err != nil || data.User.ID == 0 {
		return ErrUnauthenticated
	}

	granted, err := s.HasPermission(data.User.ID, permission)
	if err != nil {
		return err
	}

	if !granted {
		log.Warn().Uint64("user_id", data.User.ID).Str("permission", permission).
			Msg("User lacks required permission")

		return &AccessDeniedError{UserID: data.User.ID, Permission: permission}
	}

	return nil
}
