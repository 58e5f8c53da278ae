// Package service implements admin authentication against the credential store.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	admindomain "orgsphere/backend/internal/admin/domain"
	orgdomain "orgsphere/backend/internal/organization/domain"
	"orgsphere/backend/internal/security"
)

// ErrInvalidCredentials is returned for any login failure. The message is
// deliberately the same for an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthResult holds the outcome of a successful login.
type AuthResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AdminRepo is the minimal credential store needed by the auth service.
type AdminRepo interface {
	GetByEmail(ctx context.Context, email string) (*admindomain.Account, error)
}

// OrgRepo is the minimal organization registry needed by the auth service.
type OrgRepo interface {
	GetByAdminID(ctx context.Context, adminID string) (*orgdomain.Record, error)
}

// AuthService implements password login and session token issuance.
type AuthService struct {
	admins AdminRepo
	orgs   OrgRepo
	hasher *security.Hasher
	tokens *security.TokenProvider
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(admins AdminRepo, orgs OrgRepo, hasher *security.Hasher, tokens *security.TokenProvider) *AuthService {
	return &AuthService{admins: admins, orgs: orgs, hasher: hasher, tokens: tokens}
}

// Login authenticates with email/password and issues a session token bound to
// the admin's identity and its owned organization (if any). Failures are never
// distinguished between unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(account.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// An admin may exist without owning an organization yet; the claim is
	// simply absent in that case.
	organization := ""
	record, err := s.orgs.GetByAdminID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		organization = record.NormalizedName
	}

	token, expiresAt, err := s.tokens.IssueSession(account.ID, account.Email, organization)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt}, nil
}
