package repositories

import (
	"context"

	"biblio-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loanRequestRepository implements LoanRequestRepository interface
type loanRequestRepository struct {
	db *gorm.DB
}

// NewLoanRequestRepository creates a new loan request repository
func NewLoanRequestRepository(db *gorm.DB) LoanRequestRepository {
	return &loanRequestRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *loanRequestRepository) WithTx(tx *gorm.DB) LoanRequestRepository {
	return &loanRequestRepository{db: tx}
}

// Create creates a new loan request
func (r *loanRequestRepository) Create(ctx context.Context, req *models.LoanRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID gets a loan request by ID with requester and book preloaded
func (r *loanRequestRepository) GetByID(ctx context.Context, id uint) (*models.LoanRequest, error) {
	var req models.LoanRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Book").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Update updates a loan request. Associations are never written through
// this path; requester and book references are immutable after creation.
func (r *loanRequestRepository) Update(ctx context.Context, req *models.LoanRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(req).Error
}

// List lists loan requests with optional requester/status filters
func (r *loanRequestRepository) List(ctx context.Context, filter *LoanRequestFilter, offset, limit int) ([]*models.LoanRequest, int64, error) {
	var requests []*models.LoanRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.LoanRequest{})
	if filter != nil {
		if filter.RequesterID != nil {
			query = query.Where("requester_id = ?", *filter.RequesterID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Requester").
		Preload("Book").
		Offset(offset).Limit(limit).
		Order("requested_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// HasPending checks for an existing pending request for the same
// (requester, book) pair
func (r *loanRequestRepository) HasPending(ctx context.Context, requesterID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoanRequest{}).
		Where("requester_id = ? AND book_id = ? AND status = ?", requesterID, bookID, "pending").
		Count(&count).Error
	return count > 0, err
}

// CountByStatus counts loan requests in the given status
func (r *loanRequestRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoanRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
