package repository

import (
	"context"

	"orgsphere/backend/internal/organization/domain"
)

// Repository defines persistence for organization records.
type Repository interface {
	GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Record, error)
	GetByAdminID(ctx context.Context, adminID string) (*domain.Record, error)
	Create(ctx context.Context, r *domain.Record) error
	Update(ctx context.Context, previousNormalizedName string, r *domain.Record) error
	Delete(ctx context.Context, normalizedName string) error
}
