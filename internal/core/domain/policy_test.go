package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	admin   = Actor{ID: 1, Roles: []Role{RoleAdmin}}
	reader  = Actor{ID: 2, Roles: []Role{RoleUser}}
	blocked = Actor{ID: 3, Roles: []Role{RoleUser}, Blocked: true}
)

func TestCanCreateLoanRequest(t *testing.T) {
	t.Run("reader may request for themselves", func(t *testing.T) {
		assert.NoError(t, CanCreateLoanRequest(reader, reader.ID))
	})

	t.Run("reader may not request for somebody else", func(t *testing.T) {
		assert.ErrorIs(t, CanCreateLoanRequest(reader, admin.ID), ErrForbidden)
	})

	t.Run("admin may request for anyone", func(t *testing.T) {
		assert.NoError(t, CanCreateLoanRequest(admin, reader.ID))
	})

	t.Run("blocked actor may not request at all", func(t *testing.T) {
		assert.ErrorIs(t, CanCreateLoanRequest(blocked, blocked.ID), ErrAccountBlocked)
	})
}

func TestCanReadLoanRequest(t *testing.T) {
	assert.True(t, CanReadLoanRequest(admin, reader.ID))
	assert.True(t, CanReadLoanRequest(reader, reader.ID))
	assert.False(t, CanReadLoanRequest(reader, admin.ID))
}

func TestCanUpdateLoanStatus(t *testing.T) {
	assert.True(t, CanUpdateLoanStatus(admin))
	assert.False(t, CanUpdateLoanStatus(reader))
}

func TestUserPolicies(t *testing.T) {
	t.Run("read", func(t *testing.T) {
		assert.True(t, CanReadUser(admin, reader.ID))
		assert.True(t, CanReadUser(reader, reader.ID))
		assert.False(t, CanReadUser(reader, admin.ID))
	})

	t.Run("update", func(t *testing.T) {
		assert.True(t, CanUpdateUser(admin, reader.ID))
		assert.True(t, CanUpdateUser(reader, reader.ID))
		assert.False(t, CanUpdateUser(reader, admin.ID))
	})

	t.Run("privileged fields are admin only", func(t *testing.T) {
		assert.True(t, CanSetPrivilegedUserFields(admin))
		assert.False(t, CanSetPrivilegedUserFields(reader))
	})

	t.Run("delete is admin only", func(t *testing.T) {
		assert.True(t, CanDeleteUser(admin))
		assert.False(t, CanDeleteUser(reader))
	})
}

func TestCanManageBooks(t *testing.T) {
	assert.True(t, CanManageBooks(admin))
	assert.False(t, CanManageBooks(reader))
	assert.False(t, CanManageBooks(Actor{}))
}

func TestActorIsAdmin(t *testing.T) {
	assert.True(t, admin.IsAdmin())
	assert.False(t, reader.IsAdmin())
	assert.False(t, Actor{}.IsAdmin())
}
