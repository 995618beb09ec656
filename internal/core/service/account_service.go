package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/roadwatch/roadwatch-api/internal/core/auth"
	"github.com/roadwatch/roadwatch-api/internal/core/domain"
	"github.com/roadwatch/roadwatch-api/internal/core/ports"
)

// AccountService implements registration and login.
type AccountService struct {
	repo      ports.AccountRepository
	codec     *auth.Codec
	vault     *auth.PasswordVault
	adminCode string
	logger    zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, codec *auth.Codec, vault *auth.PasswordVault, adminCode string, logger zerolog.Logger) *AccountService {
	return &AccountService{
		repo:      repo,
		codec:     codec,
		vault:     vault,
		adminCode: adminCode,
		logger:    logger,
	}
}

// Register creates a new account and returns a signed credential for it.
//
// Role assignment: a non-empty configured admin code matching the attempt
// grants the admin role; anything else yields a regular user. The code is
// a shared secret with no audit trail — a known weak trust boundary,
// accepted for this community-scale tool.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	if existing, err := s.repo.FindByEmail(ctx, input.Email); err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	} else if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.vault.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := domain.RoleUser
	if s.adminCode != "" && input.AdminCode == s.adminCode {
		role = domain.RoleAdmin
	}

	account := &domain.Account{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(created.ID, created.Email, created.Role)
	if err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}

	s.logger.Info().Str("account_id", created.ID).Str("role", created.Role).Msg("account registered")

	return &ports.AuthResult{Token: token, Account: created}, nil
}

// Login authenticates an account by email and password. An unknown email
// and a wrong password both fail with ErrInvalidCredentials so callers
// cannot enumerate registered addresses.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.vault.Verify(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}

	s.logger.Info().Str("account_id", account.ID).Msg("account logged in")

	return &ports.AuthResult{Token: token, Account: account}, nil
}
