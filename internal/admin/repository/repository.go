package repository

import (
	"context"

	"orgsphere/backend/internal/admin/domain"
)

// Repository defines persistence for admin accounts.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	UpdateCredentials(ctx context.Context, id, email, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
