package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	u := &User{Username: "admin", Password: hash}
	assert.True(t, u.VerifyPassword("s3cret"))
	assert.False(t, u.VerifyPassword("wrong"))

	broken := &User{Username: "broken", Password: "not-a-hash"}
	assert.False(t, broken.VerifyPassword("s3cret"))
}

func TestNewPermission(t *testing.T) {
	p := NewPermission("admin.super", "everything")
	assert.Equal(t, "admin", p.Resource)
	assert.Equal(t, "super", p.Action)
	assert.Equal(t, "everything", p.Description)
}

func TestRoleIsNew(t *testing.T) {
	r := NewRole()
	assert.True(t, r.IsNew())
	assert.Empty(t, r.Name)

	r.ID = 3
	assert.False(t, r.IsNew())
}
