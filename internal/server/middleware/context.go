package middleware

import "context"

type contextKey struct{ name string }

var (
	adminIDKey      = contextKey{"admin_id"}
	emailKey        = contextKey{"email"}
	organizationKey = contextKey{"organization"}
)

// WithIdentity returns a context with admin_id, email, and organization set.
// Handlers read these via GetAdminID, GetEmail, GetOrganization.
func WithIdentity(ctx context.Context, adminID, email, organization string) context.Context {
	ctx = context.WithValue(ctx, adminIDKey, adminID)
	ctx = context.WithValue(ctx, emailKey, email)
	ctx = context.WithValue(ctx, organizationKey, organization)
	return ctx
}

// GetAdminID returns the admin_id from context and true if set; otherwise "", false.
func GetAdminID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(adminIDKey).(string)
	return v, ok
}

// GetEmail returns the email from context and true if set; otherwise "", false.
func GetEmail(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(emailKey).(string)
	return v, ok
}

// GetOrganization returns the organization claim from context and true if set; otherwise "", false.
func GetOrganization(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(organizationKey).(string)
	return v, ok
}
