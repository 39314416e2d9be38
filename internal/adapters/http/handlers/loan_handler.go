package handlers

import (
	"errors"
	"strconv"

	"biblio-backend/internal/adapters/http/middleware"
	"biblio-backend/internal/core/domain"
	"biblio-backend/internal/core/services"
	"biblio-backend/internal/pkg/pagination"
	"biblio-backend/internal/pkg/ref"
	"biblio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan request endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// UpdateStatusRequest represents a status transition request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Create files a new loan request
// @Summary Create loan request
// @Description File a loan request for a book; starts in pending status
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLoanInput true "Loan request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loan-requests [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var input services.CreateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Book == "" {
		return response.BadRequest(c, "Book reference is required")
	}

	req, err := h.loanService.Create(c.Context(), middleware.Actor(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, ref.ErrInvalidRef):
			return response.BadRequest(c, "Invalid book or requester reference")
		case errors.Is(err, domain.ErrAccountBlocked):
			return response.Forbidden(c, "Your account is blocked")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only request loans for yourself")
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, services.ErrUserNotFoundSvc):
			return response.NotFound(c, "Requester not found")
		case errors.Is(err, domain.ErrDuplicatePending):
			return response.Conflict(c, "A pending request for this book already exists")
		default:
			return response.InternalServerError(c, "Failed to create loan request")
		}
	}

	return response.Created(c, "Loan request created successfully", req.ToResponse())
}

// List lists loan requests
// @Summary List loan requests
// @Description List loan requests with optional requester and status filters
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param requester query int false "Filter by requester ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /loan-requests [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	input := &services.ListLoansInput{
		Page:   params.Page,
		Limit:  params.Limit,
		Status: c.Query("status"),
	}

	if raw := c.Query("requester"); raw != "" {
		requesterID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid requester filter")
		}
		id := uint(requesterID)
		input.RequesterID = &id
	}

	result, err := h.loanService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loan requests")
	}

	return response.Success(c, "Loan requests retrieved successfully", result)
}

// Get gets a loan request by ID
// @Summary Get loan request
// @Description Get a loan request (admin or own requester)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-requests/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan request ID")
	}

	req, err := h.loanService.GetByID(c.Context(), middleware.Actor(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanRequestNotFound):
			return response.NotFound(c, "Loan request not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only view your own loan requests")
		default:
			return response.InternalServerError(c, "Failed to get loan request")
		}
	}

	return response.Success(c, "Loan request retrieved successfully", req.ToResponse())
}

// UpdateStatus applies a status transition
// @Summary Update loan request status
// @Description Move a loan request to accepted, refused or returned (admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan request ID"
// @Param body body UpdateStatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loan-requests/{id}/status [patch]
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan request ID")
	}

	var body UpdateStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if body.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	req, err := h.loanService.UpdateStatus(c.Context(), middleware.Actor(c), uint(id), body.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only administrators can update loan request status")
		case errors.Is(err, services.ErrLoanRequestNotFound):
			return response.NotFound(c, "Loan request not found")
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrBookUnavailable):
			return response.Conflict(c, "Book is not available")
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.UnprocessableEntity(c, "Unknown status value")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.UnprocessableEntity(c, "Status transition not allowed")
		default:
			return response.InternalServerError(c, "Failed to update loan request status")
		}
	}

	return response.Success(c, "Loan request status updated successfully", req.ToResponse())
}
