package services

import (
	"context"

	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/core/domain"
)

// StatsService exposes read-only counters derived from the other entities,
// computed on demand with no caching.
type StatsService struct {
	bookRepo repositories.BookRepository
	userRepo repositories.UserRepository
	loanRepo repositories.LoanRequestRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
	loanRepo repositories.LoanRequestRepository,
) *StatsService {
	return &StatsService{
		bookRepo: bookRepo,
		userRepo: userRepo,
		loanRepo: loanRepo,
	}
}

// Overview holds the three counters. JSON field names are the wire format
// consumed by the dashboard.
type Overview struct {
	BorrowedBooks   int64 `json:"livres_empruntes"`
	Users           int64 `json:"utilisateurs"`
	PendingRequests int64 `json:"demandes_en_attente"`
}

// Overview returns the current counters
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	borrowed, err := s.bookRepo.CountUnavailable(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.loanRepo.CountByStatus(ctx, string(domain.StatusPending))
	if err != nil {
		return nil, err
	}

	return &Overview{
		BorrowedBooks:   borrowed,
		Users:           users,
		PendingRequests: pending,
	}, nil
}
