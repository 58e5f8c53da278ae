package repository

import (
	"context"
	"database/sql"
	"errors"

	"orgsphere/backend/internal/organization/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an organization repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recordColumns = "normalized_name, display_name, partition_key, admin_id, created_at, updated_at"

// GetByNormalizedName returns the record for normalizedName, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM organizations WHERE normalized_name = $1", normalizedName)
	return scanRecord(row)
}

// GetByAdminID returns the record owned by adminID, or nil if the admin owns no organization.
func (r *PostgresRepository) GetByAdminID(ctx context.Context, adminID string) (*domain.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM organizations WHERE admin_id = $1", adminID)
	return scanRecord(row)
}

// Create persists the record. The unique constraints on normalized_name,
// partition_key, and admin_id make concurrent duplicate writers fail cleanly.
func (r *PostgresRepository) Create(ctx context.Context, rec *domain.Record) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO organizations (normalized_name, display_name, partition_key, admin_id, created_at) VALUES ($1, $2, $3, $4, $5)",
		rec.NormalizedName, rec.DisplayName, rec.PartitionKey, rec.AdminID, rec.CreatedAt)
	return err
}

// Update rewrites the record previously keyed by previousNormalizedName,
// including a possible change of the key itself (rename path).
func (r *PostgresRepository) Update(ctx context.Context, previousNormalizedName string, rec *domain.Record) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE organizations SET normalized_name = $1, display_name = $2, partition_key = $3, updated_at = $4 WHERE normalized_name = $5",
		rec.NormalizedName, rec.DisplayName, rec.PartitionKey, rec.UpdatedAt, previousNormalizedName)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("organization not found")
	}
	return nil
}

// Delete removes the record for normalizedName. Deleting a missing record is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, normalizedName string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM organizations WHERE normalized_name = $1", normalizedName)
	return err
}

func scanRecord(row *sql.Row) (*domain.Record, error) {
	var rec domain.Record
	var updatedAt sql.NullTime
	err := row.Scan(&rec.NormalizedName, &rec.DisplayName, &rec.PartitionKey, &rec.AdminID, &rec.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if updatedAt.Valid {
		rec.UpdatedAt = &updatedAt.Time
	}
	return &rec, nil
}
