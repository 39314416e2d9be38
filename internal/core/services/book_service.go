package services

import (
	"context"
	"errors"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/core/domain"

	"gorm.io/gorm"
)

// Book service errors
var (
	ErrBookNotFound = errors.New("book not found")
)

// BookService handles catalog management. Availability is owned by the loan
// workflow; no input here can touch it.
type BookService struct {
	bookRepo repositories.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        *string `json:"isbn"`
	Description *string `json:"description"`
}

// UpdateBookInput represents update book input
type UpdateBookInput struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	ISBN        *string `json:"isbn"`
	Description *string `json:"description"`
}

// Create creates a new catalog entry; new books are always available
func (s *BookService) Create(ctx context.Context, actor domain.Actor, input *CreateBookInput) (*models.Book, error) {
	if !domain.CanManageBooks(actor) {
		return nil, domain.ErrForbidden
	}

	book := &models.Book{
		Title:       input.Title,
		Author:      input.Author,
		ISBN:        input.ISBN,
		Description: input.Description,
		Available:   true,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update updates catalog fields of a book
func (s *BookService) Update(ctx context.Context, actor domain.Actor, id uint, input *UpdateBookInput) (*models.Book, error) {
	if !domain.CanManageBooks(actor) {
		return nil, domain.ErrForbidden
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.ISBN != nil {
		book.ISBN = input.ISBN
	}
	if input.Description != nil {
		book.Description = input.Description
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete soft deletes a book
func (s *BookService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if !domain.CanManageBooks(actor) {
		return domain.ErrForbidden
	}

	if _, err := s.bookRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	return s.bookRepo.Delete(ctx, id)
}

// GetByID gets a book by ID (public)
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// ListBooksInput represents list input
type ListBooksInput struct {
	Page      int
	Limit     int
	Title     string
	Author    string
	Available *bool
}

// ListBooksOutput represents list output
type ListBooksOutput struct {
	Books      []*models.Book `json:"books"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// List lists books with partial title/author search (public)
func (s *BookService) List(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	filter := &repositories.BookFilter{
		Title:     input.Title,
		Author:    input.Author,
		Available: input.Available,
	}

	offset := (input.Page - 1) * input.Limit
	books, total, err := s.bookRepo.List(ctx, filter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListBooksOutput{
		Books:      books,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}
