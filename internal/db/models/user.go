package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// User is a local account. The role decides which permissions it holds.
type User struct {
	ID       uint64 `gorm:"primaryKey"`
	Active   bool   `gorm:"not null;default:true"`
	Username string `gorm:"uniqueIndex;size:100;not null"`
	Email    string `gorm:"size:255"`
	// Password is an argon2id hash.
	Password string `gorm:"size:255;not null"`
	RoleID   uint   `gorm:"column:role_id;not null"`
	// A role that still has users can not be removed.
	Role      Role `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table name independent of gorm naming strategies.
func (User) TableName() string {
	return "users"
}

// HashPassword hashes a plaintext password with argon2id default parameters.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}

	return hash, nil
}

// VerifyPassword compares password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Str("user", u.Username).Msg("failed to verify password")

		return false
	}

	return match
}
