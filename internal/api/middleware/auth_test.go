package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/pkg/token"
)

func newIssuer() *token.Issuer {
	return token.NewIssuer(
		token.NewCodec(),
		token.Settings{Secret: "access-secret", TTL: time.Minute},
		token.Settings{Secret: "refresh-secret", TTL: time.Hour},
	)
}

func issueAccess(t *testing.T, issuer *token.Issuer) string {
	t.Helper()
	issued, err := issuer.IssueAccess(domain.Claim{ID: "u1", Role: domain.RoleManager, Email: "m@example.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return issued.Token
}

// runIdentify passes req through Identify and returns the claim seen by the
// next handler.
func runIdentify(t *testing.T, issuer *token.Issuer, req *http.Request) *domain.Claim {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.Claim
	called := false
	handler := Identify(issuer)(func(c echo.Context) error {
		called = true
		seen = ClaimFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	return seen
}

func TestIdentify_TokenSources(t *testing.T) {
	issuer := newIssuer()
	raw := issueAccess(t, issuer)

	tests := []struct {
		name  string
		build func() *http.Request
	}{
		{"bearer header", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer "+raw)
			return r
		}},
		{"x-access-token header", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("x-access-token", raw)
			return r
		}},
		{"query parameter", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/?token="+raw, nil)
		}},
		{"cookie", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: token.AccessCookie, Value: raw})
			return r
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := runIdentify(t, issuer, tt.build())
			if claim == nil {
				t.Fatalf("expected claim")
			}
			if claim.ID != "u1" || claim.Role != domain.RoleManager || claim.Email != "m@example.com" {
				t.Fatalf("unexpected claim: %+v", claim)
			}
		})
	}
}

func TestIdentify_BearerWinsOverCookie(t *testing.T) {
	issuer := newIssuer()
	raw := issueAccess(t, issuer)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	req.AddCookie(&http.Cookie{Name: token.AccessCookie, Value: "garbage"})

	if claim := runIdentify(t, issuer, req); claim == nil {
		t.Fatalf("bearer token should be used before the cookie")
	}
}

func TestIdentify_AnonymousWithoutToken(t *testing.T) {
	if claim := runIdentify(t, newIssuer(), httptest.NewRequest(http.MethodGet, "/", nil)); claim != nil {
		t.Fatalf("expected anonymous request, got %+v", claim)
	}
}

func TestIdentify_InvalidTokenIsIgnored(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	if claim := runIdentify(t, newIssuer(), req); claim != nil {
		t.Fatalf("invalid token must not produce a claim")
	}
}

func TestIdentify_RefreshTokenIsNotAccess(t *testing.T) {
	issuer := newIssuer()
	refresh, err := issuer.IssueRefresh(domain.Claim{ID: "u1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh.Token)

	if claim := runIdentify(t, issuer, req); claim != nil {
		t.Fatalf("refresh token must not authenticate requests")
	}
}

func TestIdentify_MalformedAuthorizationFallsThrough(t *testing.T) {
	issuer := newIssuer()
	raw := issueAccess(t, issuer)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	req.Header.Set("x-access-token", raw)

	if claim := runIdentify(t, issuer, req); claim == nil {
		t.Fatalf("expected the x-access-token header to be used")
	}
}
