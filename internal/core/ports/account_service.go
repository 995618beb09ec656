package ports

import (
	"context"

	"github.com/roadwatch/roadwatch-api/internal/core/domain"
)

// RegisterInput carries the registration form fields. AdminCode is the
// shared admin-enrollment secret; a matching non-empty value grants the
// admin role.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	AdminCode string
}

// AuthResult pairs a signed credential with the account it identifies.
type AuthResult struct {
	Token   string
	Account *domain.Account
}

// AccountService defines the registration and login workflows.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
