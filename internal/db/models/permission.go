package models

import (
	"strings"
	"time"
)

// Permission is a single grant in resource.action form, e.g. "admin.super".
type Permission struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Resource    string `gorm:"size:100;not null"`
	Action      string `gorm:"size:50;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps the table name independent of gorm naming strategies.
func (Permission) TableName() string {
	return "permissions"
}

// NewPermission splits name into resource and action.
func NewPermission(name, description string) Permission {
	resource, action, _ := strings.Cut(name, ".")

	return Permission{
		Name:        name,
		Resource:    resource,
		Action:      action,
		Description: description,
	}
}
