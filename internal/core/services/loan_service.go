package services

import (
	"context"
	"errors"
	"log"
	"time"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/core/domain"
	"biblio-backend/internal/pkg/ref"

	"gorm.io/gorm"
)

// Loan service errors
var (
	ErrLoanRequestNotFound = errors.New("loan request not found")
)

// LoanService processes the loan request workflow. Every create and status
// update runs through the pure transition rules in the domain package, and
// the resulting loan request and book mutations commit in one transaction.
type LoanService struct {
	db       *gorm.DB
	loanRepo repositories.LoanRequestRepository
	bookRepo repositories.BookRepository
	userRepo repositories.UserRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	db *gorm.DB,
	loanRepo repositories.LoanRequestRepository,
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
) *LoanService {
	return &LoanService{
		db:       db,
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		userRepo: userRepo,
	}
}

// CreateLoanInput represents create loan request input. Book and Requester
// are opaque references: a numeric id or a URI-style reference, both resolve
// to the same entity. Requester defaults to the acting user when omitted.
type CreateLoanInput struct {
	Book      string `json:"book"`
	Requester string `json:"requester,omitempty"`
}

// Create files a new loan request with status pending. Blocked requesters
// and duplicate pending requests for the same (requester, book) pair are
// rejected before anything is persisted.
func (s *LoanService) Create(ctx context.Context, actor domain.Actor, input *CreateLoanInput) (*models.LoanRequest, error) {
	bookID, err := ref.ParseID(input.Book)
	if err != nil {
		return nil, err
	}

	requesterID := actor.ID
	if input.Requester != "" {
		requesterID, err = ref.ParseID(input.Requester)
		if err != nil {
			return nil, err
		}
	}

	if err := domain.CanCreateLoanRequest(actor, requesterID); err != nil {
		return nil, err
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFoundSvc
		}
		return nil, err
	}

	var created *models.LoanRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loans := s.loanRepo.WithTx(tx)
		books := s.bookRepo.WithTx(tx)

		book, err := books.GetByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		duplicate, err := loans.HasPending(ctx, requester.ID, book.ID)
		if err != nil {
			return err
		}

		decision, err := domain.DecideLoan(
			domain.LoanOp{Kind: domain.OpCreate},
			domain.LoanSnapshot{
				RequesterBlocked: requester.Blocked,
				PendingDuplicate: duplicate,
				BookAvailable:    book.Available,
			},
		)
		if err != nil {
			return err
		}

		created = &models.LoanRequest{
			RequesterID: requester.ID,
			BookID:      book.ID,
			Status:      string(decision.Status),
			RequestedAt: time.Now(),
		}
		return loans.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Loan request %d created (requester=%d, book=%d)", created.ID, created.RequesterID, created.BookID)

	return s.loanRepo.GetByID(ctx, created.ID)
}

// UpdateStatus applies an admin status transition. The transition rules
// decide the new status and the book availability side effect; both writes
// commit together or not at all. Concurrent updates touching the same book
// are serialized by the database transaction.
func (s *LoanService) UpdateStatus(ctx context.Context, actor domain.Actor, id uint, target string) (*models.LoanRequest, error) {
	if !domain.CanUpdateLoanStatus(actor) {
		return nil, domain.ErrForbidden
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loans := s.loanRepo.WithTx(tx)
		books := s.bookRepo.WithTx(tx)

		req, err := loans.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLoanRequestNotFound
			}
			return err
		}

		book, err := books.GetByID(ctx, req.BookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		decision, err := domain.DecideLoan(
			domain.LoanOp{Kind: domain.OpUpdateStatus, Target: domain.Status(target)},
			domain.LoanSnapshot{
				Status:        domain.Status(req.Status),
				BookAvailable: book.Available,
			},
		)
		if err != nil {
			return err
		}

		req.Status = string(decision.Status)
		if decision.StampReturn {
			now := time.Now()
			req.ReturnedAt = &now
		}

		switch decision.Book {
		case domain.BookHeld:
			book.Available = false
		case domain.BookFreed:
			book.Available = true
		}
		if decision.Book != domain.BookUnchanged {
			if err := books.Update(ctx, book); err != nil {
				return err
			}
		}

		return loans.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Loan request %d moved to %s by user %d", id, target, actor.ID)

	return s.loanRepo.GetByID(ctx, id)
}

// GetByID gets a loan request readable by the actor (admin or own requester)
func (s *LoanService) GetByID(ctx context.Context, actor domain.Actor, id uint) (*models.LoanRequest, error) {
	req, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanRequestNotFound
		}
		return nil, err
	}

	if !domain.CanReadLoanRequest(actor, req.RequesterID) {
		return nil, domain.ErrForbidden
	}

	return req, nil
}

// ListLoansInput represents list input
type ListLoansInput struct {
	Page        int
	Limit       int
	RequesterID *uint
	Status      string
}

// ListLoansOutput represents list output
type ListLoansOutput struct {
	Requests   []*models.LoanRequestResponse `json:"requests"`
	Total      int64                         `json:"total"`
	Page       int                           `json:"page"`
	Limit      int                           `json:"limit"`
	TotalPages int                           `json:"total_pages"`
}

// List lists loan requests. Visible to any authenticated user; the server
// does not scope to own requests, clients filter via RequesterID.
func (s *LoanService) List(ctx context.Context, input *ListLoansInput) (*ListLoansOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	filter := &repositories.LoanRequestFilter{
		RequesterID: input.RequesterID,
		Status:      input.Status,
	}

	offset := (input.Page - 1) * input.Limit
	requests, total, err := s.loanRepo.List(ctx, filter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.LoanRequestResponse, len(requests))
	for i, req := range requests {
		responses[i] = req.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListLoansOutput{
		Requests:   responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}
