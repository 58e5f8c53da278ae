// Package service implements the tenant lifecycle: creating, reading,
// updating, and deleting an organization together with its admin account and
// data partition.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	admindomain "orgsphere/backend/internal/admin/domain"
	orgdomain "orgsphere/backend/internal/organization/domain"
	"orgsphere/backend/internal/partition"
	"orgsphere/backend/internal/security"
)

// Sentinel errors for the lifecycle service; handlers map them to HTTP status codes.
var (
	// ErrValidation marks malformed input, rejected before any store access.
	ErrValidation = errors.New("invalid input")
	// ErrNameTaken means another organization already owns the normalized name.
	ErrNameTaken = errors.New("an organization with that name already exists")
	// ErrEmailTaken means another admin account already uses the email.
	ErrEmailTaken = errors.New("an admin with that email already exists")
	// ErrPartitionTaken means a partition already occupies the target key of a rename.
	ErrPartitionTaken = errors.New("a partition already exists at the target key")
	// ErrOrganizationNotFound means the referenced organization does not exist.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrNotOwner means the acting admin does not own the organization.
	ErrNotOwner = errors.New("not authorized for this organization")
	// ErrProvisioningFailed means an underlying partition operation failed
	// unexpectedly; retryable server-side, not a client error.
	ErrProvisioningFailed = errors.New("failed to allocate storage for the organization")
)

// Summary is the external-safe view of an organization. It never carries
// password material.
type Summary struct {
	NormalizedName string `json:"organization_name"`
	DisplayName    string `json:"display_name"`
	PartitionKey   string `json:"partition_key"`
	AdminID        string `json:"admin_id"`
}

// OrgRepo is the minimal organization registry needed by the lifecycle service.
type OrgRepo interface {
	GetByNormalizedName(ctx context.Context, normalizedName string) (*orgdomain.Record, error)
	GetByAdminID(ctx context.Context, adminID string) (*orgdomain.Record, error)
	Create(ctx context.Context, r *orgdomain.Record) error
	Update(ctx context.Context, previousNormalizedName string, r *orgdomain.Record) error
	Delete(ctx context.Context, normalizedName string) error
}

// AdminRepo is the minimal credential store needed by the lifecycle service.
type AdminRepo interface {
	GetByEmail(ctx context.Context, email string) (*admindomain.Account, error)
	Create(ctx context.Context, a *admindomain.Account) error
	UpdateCredentials(ctx context.Context, id, email, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// LifecycleService orchestrates the organization registry, credential store,
// and partition store. Writes provision dependents before the referencing
// record and deletes clear dependents before the record, so a surviving
// inconsistency after a crash is always an orphaned dependent, never a record
// pointing at a missing partition or admin.
type LifecycleService struct {
	orgs       OrgRepo
	admins     AdminRepo
	partitions partition.Store
	hasher     *security.Hasher
	locks      *keyedMutex
}

// NewLifecycleService returns a LifecycleService with the given dependencies.
func NewLifecycleService(orgs OrgRepo, admins AdminRepo, partitions partition.Store, hasher *security.Hasher) *LifecycleService {
	return &LifecycleService{
		orgs:       orgs,
		admins:     admins,
		partitions: partitions,
		hasher:     hasher,
		locks:      newKeyedMutex(),
	}
}

// Create registers an organization: it allocates the tenant partition, creates
// the owning admin account, and records the organization metadata, in that
// order. Returns the summary of the new organization.
func (s *LifecycleService) Create(ctx context.Context, organizationName, email, password string) (*Summary, error) {
	displayName := strings.TrimSpace(organizationName)
	normalized := orgdomain.NormalizeName(organizationName)
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateOrgName(normalized); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	partitionKey := orgdomain.PartitionKey(normalized)

	unlock := s.locks.Lock(normalized)
	defer unlock()

	existing, err := s.orgs.GetByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	existingAdmin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingAdmin != nil {
		return nil, ErrEmailTaken
	}

	// Partition first: if allocation fails nothing else was created.
	if err := s.partitions.Create(ctx, partitionKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	account := &admindomain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		Role:         admindomain.RoleAdmin,
		CreatedAt:    now,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.admins.Create(ctx, account); err != nil {
		return nil, err
	}

	// Record last, once both dependents exist.
	record := &orgdomain.Record{
		NormalizedName: normalized,
		DisplayName:    displayName,
		PartitionKey:   partitionKey,
		AdminID:        account.ID,
		CreatedAt:      now,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.orgs.Create(ctx, record); err != nil {
		return nil, err
	}

	return summarize(record), nil
}

// Get returns the summary for the organization with the given name.
func (s *LifecycleService) Get(ctx context.Context, organizationName string) (*Summary, error) {
	normalized := orgdomain.NormalizeName(organizationName)
	if normalized == "" {
		return nil, fmt.Errorf("%w: organization name is required", ErrValidation)
	}
	record, err := s.orgs.GetByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrOrganizationNotFound
	}
	return summarize(record), nil
}

// Update renames and re-homes the organization owned by actorAdminID. The
// payload name is the organization's NEW name; the target organization is
// resolved via the acting admin, never via the name in the payload. A name
// change migrates the partition copy-then-switch: the new partition is
// allocated and filled before the old one is dropped, and the old partition is
// left intact if the copy fails. Credentials are rotated in place (the admin
// ID is stable), and the registry record is rewritten last.
func (s *LifecycleService) Update(ctx context.Context, newOrganizationName, newEmail, newPassword, actorAdminID string) (*Summary, error) {
	displayName := strings.TrimSpace(newOrganizationName)
	newNormalized := orgdomain.NormalizeName(newOrganizationName)
	newEmail = strings.TrimSpace(strings.ToLower(newEmail))
	if err := validateOrgName(newNormalized); err != nil {
		return nil, err
	}
	if err := validateEmail(newEmail); err != nil {
		return nil, err
	}
	if err := validatePassword(newPassword); err != nil {
		return nil, err
	}
	if strings.TrimSpace(actorAdminID) == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrValidation)
	}

	current, err := s.orgs.GetByAdminID(ctx, actorAdminID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrOrganizationNotFound
	}

	// Serialize against mutations of both the current and the target name.
	unlock := s.locks.LockAll(current.NormalizedName, newNormalized)
	defer unlock()

	// Re-read under the lock; a concurrent update may have renamed or deleted.
	current, err = s.orgs.GetByAdminID(ctx, actorAdminID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrOrganizationNotFound
	}

	newPartitionKey := orgdomain.PartitionKey(newNormalized)

	if newNormalized != current.NormalizedName {
		other, err := s.orgs.GetByNormalizedName(ctx, newNormalized)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrNameTaken
		}
	}

	other, err := s.admins.GetByEmail(ctx, newEmail)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != actorAdminID {
		return nil, ErrEmailTaken
	}

	if newPartitionKey != current.PartitionKey {
		taken, err := s.partitions.Exists(ctx, newPartitionKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
		}
		if taken {
			return nil, ErrPartitionTaken
		}
		if err := s.partitions.Create(ctx, newPartitionKey); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
		}
		if err := s.partitions.Copy(ctx, current.PartitionKey, newPartitionKey); err != nil {
			// Old partition untouched; discard the partial copy.
			_ = s.partitions.Drop(ctx, newPartitionKey)
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
		}
		if err := s.partitions.Drop(ctx, current.PartitionKey); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
		}
	}

	hashed, err := s.hasher.Hash([]byte(newPassword))
	if err != nil {
		return nil, err
	}
	if err := s.admins.UpdateCredentials(ctx, actorAdminID, newEmail, hashed); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := &orgdomain.Record{
		NormalizedName: newNormalized,
		DisplayName:    displayName,
		PartitionKey:   newPartitionKey,
		AdminID:        current.AdminID,
		CreatedAt:      current.CreatedAt,
		UpdatedAt:      &now,
	}
	if err := s.orgs.Update(ctx, current.NormalizedName, updated); err != nil {
		return nil, err
	}

	return summarize(updated), nil
}

// Delete removes the organization with the given name together with its
// partition and admin account. Only the owning admin may delete. Cleanup of an
// already-absent partition or admin is treated as success; a failing cleanup
// does not abort removal of the record itself, so an organization can never
// become undeletable by its owner.
func (s *LifecycleService) Delete(ctx context.Context, organizationName, actorAdminID string) error {
	normalized := orgdomain.NormalizeName(organizationName)
	if normalized == "" {
		return fmt.Errorf("%w: organization name is required", ErrValidation)
	}
	if strings.TrimSpace(actorAdminID) == "" {
		return fmt.Errorf("%w: admin id is required", ErrValidation)
	}

	unlock := s.locks.Lock(normalized)
	defer unlock()

	record, err := s.orgs.GetByNormalizedName(ctx, normalized)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrOrganizationNotFound
	}
	if record.AdminID != actorAdminID {
		return ErrNotOwner
	}

	// Dependents first, best effort; the record goes last.
	_ = s.partitions.Drop(ctx, record.PartitionKey)
	_ = s.admins.Delete(ctx, record.AdminID)

	return s.orgs.Delete(ctx, normalized)
}

func summarize(r *orgdomain.Record) *Summary {
	return &Summary{
		NormalizedName: r.NormalizedName,
		DisplayName:    r.DisplayName,
		PartitionKey:   r.PartitionKey,
		AdminID:        r.AdminID,
	}
}

func validateOrgName(normalized string) error {
	if normalized == "" {
		return fmt.Errorf("%w: organization name is required", ErrValidation)
	}
	if len(normalized) < 2 || len(normalized) > 64 {
		return fmt.Errorf("%w: organization name must be 2-64 characters", ErrValidation)
	}
	return nil
}

const simpleEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

var emailRe = regexp.MustCompile(simpleEmail)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	return nil
}
