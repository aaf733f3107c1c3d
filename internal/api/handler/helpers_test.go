package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/api/middleware"
	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/pkg/token"
)

var (
	adminClaim   = domain.Claim{ID: "admin-1", Role: domain.RoleAdmin, Email: "admin@admin.com"}
	managerClaim = domain.Claim{ID: "manager-1", Role: domain.RoleManager, Email: "manager@manager.com"}
	userClaim    = domain.Claim{ID: "user-1", Role: domain.RoleUser, Email: "user2@user.com"}
)

// fixedVerifier accepts any token as claim.
type fixedVerifier struct {
	claim domain.Claim
}

func (v fixedVerifier) VerifyAccess(string) (*token.Parsed, error) {
	return &token.Parsed{Claim: v.claim}, nil
}

type call struct {
	method string
	target string
	body   io.Reader
	ctype  string
	claim  *domain.Claim
	params map[string]string
	cookie *http.Cookie
}

func jsonCall(method, target, body string) call {
	return call{method: method, target: target, body: strings.NewReader(body), ctype: echo.MIMEApplicationJSON}
}

func (c call) as(claim domain.Claim) call {
	c.claim = &claim
	return c
}

func (c call) with(params map[string]string) call {
	c.params = params
	return c
}

// serve runs h for the call, with the claim injected the way Identify does
// it. The handler's error is returned unrendered.
func serve(t *testing.T, h echo.HandlerFunc, in call) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(in.method, in.target, in.body)
	if in.ctype != "" {
		req.Header.Set(echo.HeaderContentType, in.ctype)
	}
	if in.cookie != nil {
		req.AddCookie(in.cookie)
	}

	next := h
	if in.claim != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer test")
		next = middleware.Identify(fixedVerifier{claim: *in.claim})(h)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(in.params) > 0 {
		names := make([]string, 0, len(in.params))
		values := make([]string, 0, len(in.params))
		for name, value := range in.params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return rec, next(c)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}
