package ports

import (
	"context"

	"github.com/roadwatch/roadwatch-api/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
// Email matching is case-sensitive against the stored value.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
