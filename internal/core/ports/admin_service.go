package ports

import (
	"context"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// CreateUserInput carries the fields an admin provides for a new account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// DeletedUser summarises an account removed by an admin.
type DeletedUser struct {
	ID    string
	Email string
	Role  domain.Role
}

// AdminService implements the admin panel use cases. Every mutating method
// receives the resolved actor and enforces the admin policy rules itself.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.UserWithCount, error)
	GetUser(ctx context.Context, id string) (*domain.UserWithCount, error)
	CreateUser(ctx context.Context, actor *domain.Identity, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.Identity, id string, upd domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.Identity, id string) (*DeletedUser, error)
	Stats(ctx context.Context) (*domain.AdminStats, error)
}
