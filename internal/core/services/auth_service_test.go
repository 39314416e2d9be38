package services

import (
	"context"
	"testing"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/config"
	"biblio-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a reader with the implicit user role", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		result, err := svc.Register(ctx, &RegisterInput{
			Email:     "new@biblio.com",
			Password:  "password123",
			FirstName: "New",
			LastName:  "Reader",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, []domain.Role{domain.RoleUser}, result.User.Roles)
		assert.False(t, result.User.Blocked)

		// Nothing is stored for the implicit role
		var stored models.User
		require.NoError(t, db.First(&stored, result.User.ID).Error)
		assert.Empty(t, stored.Roles)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		createTestUser(t, db, "taken@biblio.com", nil, false)

		_, err := svc.Register(ctx, &RegisterInput{
			Email:     "taken@biblio.com",
			Password:  "password123",
			FirstName: "New",
			LastName:  "Reader",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		user := createTestUser(t, db, "reader@biblio.com", nil, false)

		result, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, user.Email, result.User.Email)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		user := createTestUser(t, db, "reader@biblio.com", nil, false)

		_, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		_, err := svc.Login(ctx, &LoginInput{Email: "nobody@biblio.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blocked account is refused before the credential check", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		user := createTestUser(t, db, "blocked@biblio.com", nil, true)

		_, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrAccountBlocked)
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotation spends the presented token", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		user := createTestUser(t, db, "reader@biblio.com", nil, false)

		login, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "password123"})
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

		// Replaying the spent token fails
		_, err = svc.RefreshToken(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("garbage token", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		_, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("blocked account cannot refresh", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		user := createTestUser(t, db, "reader@biblio.com", nil, false)

		login, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "password123"})
		require.NoError(t, err)

		require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("blocked", true).Error)

		_, err = svc.RefreshToken(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrAccountBlocked)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("logout revokes the session", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		user := createTestUser(t, db, "reader@biblio.com", nil, false)

		login, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "password123"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, login.RefreshToken))

		_, err = svc.RefreshToken(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("logout all revokes every session", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		user := createTestUser(t, db, "reader@biblio.com", nil, false)

		first, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "password123"})
		require.NoError(t, err)
		second, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "password123"})
		require.NoError(t, err)

		require.NoError(t, svc.LogoutAll(ctx, user.ID))

		_, err = svc.RefreshToken(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
		_, err = svc.RefreshToken(ctx, second.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})
}
