package domain

import "errors"

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")
)

// Loan workflow errors
var (
	ErrAccountBlocked    = errors.New("account is blocked, borrowing is not allowed")
	ErrDuplicatePending  = errors.New("a pending request for this book already exists")
	ErrBookUnavailable   = errors.New("book is already on loan")
	ErrInvalidStatus     = errors.New("unknown loan status")
	ErrInvalidTransition = errors.New("illegal status transition")
)
