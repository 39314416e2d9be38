package repositories

import (
	"context"

	"biblio-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

// BookFilter narrows book listings
type BookFilter struct {
	Title     string // partial match
	Author    string // partial match
	Available *bool
}

// BookRepository defines book repository interface. WithTx returns a copy
// bound to the given transaction so book mutations can commit atomically
// with loan request mutations.
type BookRepository interface {
	WithTx(tx *gorm.DB) BookRepository
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *BookFilter, offset, limit int) ([]*models.Book, int64, error)
	CountUnavailable(ctx context.Context) (int64, error)
}

// LoanRequestFilter narrows loan request listings
type LoanRequestFilter struct {
	RequesterID *uint
	Status      string
}

// LoanRequestRepository defines loan request repository interface
type LoanRequestRepository interface {
	WithTx(tx *gorm.DB) LoanRequestRepository
	Create(ctx context.Context, req *models.LoanRequest) error
	GetByID(ctx context.Context, id uint) (*models.LoanRequest, error)
	Update(ctx context.Context, req *models.LoanRequest) error
	List(ctx context.Context, filter *LoanRequestFilter, offset, limit int) ([]*models.LoanRequest, int64, error)
	HasPending(ctx context.Context, requesterID, bookID uint) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}
