package services

import (
	"context"
	"testing"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/core/domain"
	"biblio-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates a user with roles", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		admin := createTestUser(t, db, "admin@biblio.com", []string{"ADMIN"}, false)

		user, err := svc.Create(ctx, admin.Actor(), &CreateUserInput{
			Email:     "new@biblio.com",
			Password:  "password123",
			FirstName: "New",
			LastName:  "User",
			Roles:     []string{"ADMIN"},
		})
		require.NoError(t, err)
		assert.Contains(t, user.Roles, domain.RoleAdmin)
		assert.Contains(t, user.Roles, domain.RoleUser)
	})

	t.Run("non admin is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		reader := createTestUser(t, db, "reader@biblio.com", nil, false)

		_, err := svc.Create(ctx, reader.Actor(), &CreateUserInput{
			Email:    "new@biblio.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		admin := createTestUser(t, db, "admin@biblio.com", []string{"ADMIN"}, false)
		createTestUser(t, db, "taken@biblio.com", nil, false)

		_, err := svc.Create(ctx, admin.Actor(), &CreateUserInput{
			Email:    "taken@biblio.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		admin := createTestUser(t, db, "admin@biblio.com", []string{"ADMIN"}, false)

		_, err := svc.Create(ctx, admin.Actor(), &CreateUserInput{
			Email:    "new@biblio.com",
			Password: "password123",
			Roles:    []string{"SUPERUSER"},
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestUserServiceGetByID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	admin := createTestUser(t, db, "admin@biblio.com", []string{"ADMIN"}, false)
	reader := createTestUser(t, db, "reader@biblio.com", nil, false)

	t.Run("self read", func(t *testing.T) {
		user, err := svc.GetByID(ctx, reader.Actor(), reader.ID)
		require.NoError(t, err)
		assert.Equal(t, reader.Email, user.Email)
		assert.Equal(t, []domain.Role{domain.RoleUser}, user.Roles)
	})

	t.Run("admin reads anyone", func(t *testing.T) {
		_, err := svc.GetByID(ctx, admin.Actor(), reader.ID)
		assert.NoError(t, err)
	})

	t.Run("reader may not read others", func(t *testing.T) {
		_, err := svc.GetByID(ctx, reader.Actor(), admin.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetByID(ctx, admin.Actor(), 999)
		assert.ErrorIs(t, err, ErrUserNotFoundSvc)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("user updates own profile", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		reader := createTestUser(t, db, "reader@biblio.com", nil, false)

		user, err := svc.Update(ctx, reader.Actor(), reader.ID, &UpdateUserInput{
			FirstName: strPtr("Updated"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Updated", user.FirstName)
	})

	t.Run("user may not set privileged fields", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		reader := createTestUser(t, db, "reader@biblio.com", nil, false)

		roles := []string{"ADMIN"}
		_, err := svc.Update(ctx, reader.Actor(), reader.ID, &UpdateUserInput{Roles: &roles})
		assert.ErrorIs(t, err, domain.ErrForbidden)

		blocked := true
		_, err = svc.Update(ctx, reader.Actor(), reader.ID, &UpdateUserInput{Blocked: &blocked})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin promotes and blocks a user", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		admin := createTestUser(t, db, "admin@biblio.com", []string{"ADMIN"}, false)
		reader := createTestUser(t, db, "reader@biblio.com", nil, false)

		roles := []string{"ADMIN"}
		blocked := true
		user, err := svc.Update(ctx, admin.Actor(), reader.ID, &UpdateUserInput{
			Roles:   &roles,
			Blocked: &blocked,
		})
		require.NoError(t, err)
		assert.Contains(t, user.Roles, domain.RoleAdmin)
		assert.True(t, user.Blocked)
	})

	t.Run("new password is hashed", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		reader := createTestUser(t, db, "reader@biblio.com", nil, false)

		_, err := svc.Update(ctx, reader.Actor(), reader.ID, &UpdateUserInput{
			Password: strPtr("brand-new-secret"),
		})
		require.NoError(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, reader.ID).Error)
		assert.True(t, password.Verify("brand-new-secret", stored.Password))
	})

	t.Run("echoed hash is not re-hashed", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		reader := createTestUser(t, db, "reader@biblio.com", nil, false)
		originalHash := reader.Password

		_, err := svc.Update(ctx, reader.Actor(), reader.ID, &UpdateUserInput{
			Password: strPtr(originalHash),
		})
		require.NoError(t, err)

		var stored models.User
		require.NoError(t, db.First(&stored, reader.ID).Error)
		assert.Equal(t, originalHash, stored.Password)
		assert.True(t, password.Verify("password123", stored.Password))
	})

	t.Run("email change to a taken address is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewUserService(repositories.NewUserRepository(db))
		reader := createTestUser(t, db, "reader@biblio.com", nil, false)
		createTestUser(t, db, "taken@biblio.com", nil, false)

		_, err := svc.Update(ctx, reader.Actor(), reader.ID, &UpdateUserInput{
			Email: strPtr("taken@biblio.com"),
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	admin := createTestUser(t, db, "admin@biblio.com", []string{"ADMIN"}, false)
	reader := createTestUser(t, db, "reader@biblio.com", nil, false)

	t.Run("non admin is rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, reader.Actor(), admin.ID), domain.ErrForbidden)
	})

	t.Run("admin may not delete themselves", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, admin.Actor(), admin.ID), ErrCannotDeleteSelf)
	})

	t.Run("admin deletes a user", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, admin.Actor(), reader.ID))

		_, err := svc.GetByID(ctx, admin.Actor(), reader.ID)
		assert.ErrorIs(t, err, ErrUserNotFoundSvc)
	})
}

func TestUserServiceList(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	createTestUser(t, db, "a@biblio.com", nil, false)
	createTestUser(t, db, "b@biblio.com", nil, false)
	createTestUser(t, db, "c@biblio.com", nil, false)

	out, err := svc.ListUsers(ctx, &ListUsersInput{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Users, 2)
	assert.Equal(t, int64(3), out.Total)
	assert.Equal(t, 2, out.TotalPages)
}
