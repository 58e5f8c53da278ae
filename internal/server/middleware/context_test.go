package middleware

import (
	"context"
	"testing"
)

func TestIdentityRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), "admin-1", "a@b.test", "acme")

	if got, ok := GetAdminID(ctx); !ok || got != "admin-1" {
		t.Errorf("GetAdminID = %q, %v", got, ok)
	}
	if got, ok := GetEmail(ctx); !ok || got != "a@b.test" {
		t.Errorf("GetEmail = %q, %v", got, ok)
	}
	if got, ok := GetOrganization(ctx); !ok || got != "acme" {
		t.Errorf("GetOrganization = %q, %v", got, ok)
	}
}

func TestIdentityAbsent(t *testing.T) {
	ctx := context.Background()

	if got, ok := GetAdminID(ctx); ok || got != "" {
		t.Errorf("GetAdminID on empty context = %q, %v", got, ok)
	}
	if _, ok := GetEmail(ctx); ok {
		t.Error("GetEmail should report absent")
	}
	if _, ok := GetOrganization(ctx); ok {
		t.Error("GetOrganization should report absent")
	}
}
