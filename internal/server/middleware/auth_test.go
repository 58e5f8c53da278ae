package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orgsphere/backend/internal/security"
)

func newProtected(t *testing.T) (http.Handler, *security.TokenProvider) {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("test token provider: %v", err)
	}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID, _ := GetAdminID(r.Context())
		w.Header().Set("X-Admin-ID", adminID)
		w.WriteHeader(http.StatusNoContent)
	})
	return RequireSession(tokens)(inner), tokens
}

func TestRequireSession_ValidToken(t *testing.T) {
	h, tokens := newProtected(t)

	token, _, err := tokens.IssueSession("admin-1", "a@b.test", "acme")
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if got := rec.Header().Get("X-Admin-ID"); got != "admin-1" {
		t.Errorf("admin id in context = %q, want %q", got, "admin-1")
	}
}

func TestRequireSession_MissingHeader(t *testing.T) {
	h, _ := newProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSession_MalformedHeader(t *testing.T) {
	h, tokens := newProtected(t)
	token, _, err := tokens.IssueSession("admin-1", "a@b.test", "")
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	for _, header := range []string{
		"Basic abc123",
		token,            // missing scheme
		"Bearer",         // no token
		"Bearer ",        // empty token
		"Bearer garbage", // not a JWT
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestRequireSession_SchemeIsCaseInsensitive(t *testing.T) {
	h, tokens := newProtected(t)
	token, _, err := tokens.IssueSession("admin-1", "a@b.test", "")
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
