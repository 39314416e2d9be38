package services

import (
	"context"
	"errors"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/core/domain"
	"biblio-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFoundSvc    = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents create user input (admin path; may grant roles)
type CreateUserInput struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
	Blocked   bool     `json:"blocked"`
}

// UpdateUserInput represents update user input. Roles and Blocked are
// privileged fields, settable only by admins.
type UpdateUserInput struct {
	Email     *string   `json:"email"`
	Password  *string   `json:"password"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Roles     *[]string `json:"roles"`
	Blocked   *bool     `json:"blocked"`
}

// Create creates a new user as an administrator
func (s *UserService) Create(ctx context.Context, actor domain.Actor, input *CreateUserInput) (*models.UserResponse, error) {
	if !domain.CanSetPrivilegedUserFields(actor) {
		return nil, domain.ErrForbidden
	}

	if err := validateRoles(input.Roles); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     input.Email,
		Password:  hashed,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Roles:     input.Roles,
		Blocked:   input.Blocked,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Page  int
	Limit int
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// ListUsers lists all users with pagination (admin only, gated at the route)
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit

	users, total, err := s.userRepo.List(ctx, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID gets a user readable by the actor (admin or self)
func (s *UserService) GetByID(ctx context.Context, actor domain.Actor, id uint) (*models.UserResponse, error) {
	if !domain.CanReadUser(actor, id) {
		return nil, domain.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFoundSvc
		}
		return nil, err
	}

	return user.ToResponse(), nil
}

// Update updates a user. Admins may update anyone including roles and the
// blocked flag; a user may update their own non-privileged fields. The
// credential is re-hashed only when the submitted value differs from the
// stored hash, so echoing the hash back on unrelated updates is harmless.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	if !domain.CanUpdateUser(actor, id) {
		return nil, domain.ErrForbidden
	}
	if (input.Roles != nil || input.Blocked != nil) && !domain.CanSetPrivilegedUserFields(actor) {
		return nil, domain.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFoundSvc
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if input.Password != nil && *input.Password != "" && *input.Password != user.Password {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if input.Roles != nil {
		if err := validateRoles(*input.Roles); err != nil {
			return nil, err
		}
		user.Roles = *input.Roles
	}
	if input.Blocked != nil {
		user.Blocked = *input.Blocked
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// Delete soft deletes a user (admin only, never self)
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if !domain.CanDeleteUser(actor) {
		return domain.ErrForbidden
	}
	if id == actor.ID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFoundSvc
		}
		return err
	}

	return s.userRepo.Delete(ctx, id)
}

func validateRoles(roles []string) error {
	for _, r := range roles {
		switch domain.Role(r) {
		case domain.RoleUser, domain.RoleAdmin:
		default:
			return ErrInvalidRole
		}
	}
	return nil
}
