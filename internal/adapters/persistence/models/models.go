package models

import (
	"time"

	"biblio-backend/internal/core/domain"

	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:180;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FirstName string         `gorm:"size:255;not null" json:"first_name"`
	LastName  string         `gorm:"size:255;not null" json:"last_name"`
	Roles     []string       `gorm:"serializer:json" json:"-"`
	Blocked   bool           `gorm:"default:false" json:"blocked"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RoleSet returns the stored roles plus the implicit USER role, deduplicated.
// The implicit role is derived on read and never persisted.
func (u *User) RoleSet() []domain.Role {
	stored := make([]domain.Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		stored = append(stored, domain.Role(r))
	}
	return domain.EffectiveRoles(stored)
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if domain.Role(r) == domain.RoleAdmin {
			return true
		}
	}
	return false
}

// Actor builds the explicit actor identity used by policy checks
func (u *User) Actor() domain.Actor {
	return domain.Actor{
		ID:      u.ID,
		Email:   u.Email,
		Roles:   u.RoleSet(),
		Blocked: u.Blocked,
	}
}

// UserResponse DTO
type UserResponse struct {
	ID        uint          `json:"id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Roles     []domain.Role `json:"roles"`
	Blocked   bool          `json:"blocked"`
	CreatedAt time.Time     `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     u.RoleSet(),
		Blocked:   u.Blocked,
		CreatedAt: u.CreatedAt,
	}
}

// Book represents books table. Available is mutated only by the loan
// workflow, never directly by a client request.
type Book struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null;index" json:"title"`
	Author      string         `gorm:"size:255;not null;index" json:"author"`
	ISBN        *string        `gorm:"size:20" json:"isbn"`
	Description *string        `gorm:"type:text" json:"description"`
	Available   bool           `gorm:"default:true" json:"available"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// LoanRequest represents loan_requests table. Requester and Book references
// are immutable after creation; status moves through the 4-state lifecycle.
type LoanRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RequesterID uint       `gorm:"not null;index" json:"requester_id"`
	BookID      uint       `gorm:"not null;index" json:"book_id"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	ReturnedAt  *time.Time `json:"returned_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations (weak references, lookup only)
	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Book      *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (LoanRequest) TableName() string {
	return "loan_requests"
}

// LoanRequestResponse DTO
type LoanRequestResponse struct {
	ID          uint          `json:"id"`
	RequesterID uint          `json:"requester_id"`
	BookID      uint          `json:"book_id"`
	Status      string        `json:"status"`
	RequestedAt time.Time     `json:"requested_at"`
	ReturnedAt  *time.Time    `json:"returned_at"`
	Requester   *UserResponse `json:"requester,omitempty"`
	Book        *Book         `json:"book,omitempty"`
}

func (lr *LoanRequest) ToResponse() *LoanRequestResponse {
	resp := &LoanRequestResponse{
		ID:          lr.ID,
		RequesterID: lr.RequesterID,
		BookID:      lr.BookID,
		Status:      lr.Status,
		RequestedAt: lr.RequestedAt,
		ReturnedAt:  lr.ReturnedAt,
		Book:        lr.Book,
	}
	if lr.Requester != nil {
		resp.Requester = lr.Requester.ToResponse()
	}
	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Book{},
		&LoanRequest{},
		&RefreshToken{},
	)
}
