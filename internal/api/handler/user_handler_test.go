package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

type stubUserService struct {
	listFn       func(ctx context.Context, claim domain.Claim, page ports.Page) (*ports.PageResult[domain.UserView], error)
	meFn         func(ctx context.Context, claim domain.Claim) (*domain.UserView, error)
	updateRoleFn func(ctx context.Context, id string, role domain.Role) error
}

func (s *stubUserService) List(ctx context.Context, claim domain.Claim, page ports.Page) (*ports.PageResult[domain.UserView], error) {
	return s.listFn(ctx, claim, page)
}

func (s *stubUserService) Me(ctx context.Context, claim domain.Claim) (*domain.UserView, error) {
	return s.meFn(ctx, claim)
}

func (s *stubUserService) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return s.updateRoleFn(ctx, id, role)
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context, claim domain.Claim, page ports.Page) (*ports.PageResult[domain.UserView], error) {
			if claim.ID != adminClaim.ID {
				t.Fatalf("expected admin claim, got %+v", claim)
			}
			if page.Limit != 100 || page.Offset != 10 {
				t.Fatalf("unexpected page %+v", page)
			}
			return &ports.PageResult[domain.UserView]{
				Data:  []domain.UserView{{ID: "u1", Email: "alice@example.com", Role: domain.RoleUser}},
				Limit: page.Limit, Offset: page.Offset, Count: 11,
			}, nil
		},
	}
	h := NewUserHandler(stub)

	rec, err := serve(t, h.List, call{method: http.MethodGet, target: "/users?limit=500&offset=10"}.as(adminClaim))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listResponse[userResponse]
	decode(t, rec, &resp)
	if resp.Count != 11 || len(resp.Data) != 1 || resp.Data[0].Role != "USER" {
		t.Fatalf("unexpected listing: %+v", resp)
	}
}

func TestUserHandler_Me(t *testing.T) {
	stub := &stubUserService{
		meFn: func(ctx context.Context, claim domain.Claim) (*domain.UserView, error) {
			return &domain.UserView{ID: claim.ID, Email: claim.Email, Role: claim.Role}, nil
		},
	}
	h := NewUserHandler(stub)

	rec, err := serve(t, h.Me, call{method: http.MethodGet, target: "/users/me"}.as(userClaim))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userEnvelope
	decode(t, rec, &resp)
	if resp.User.ID != userClaim.ID || resp.User.Email != userClaim.Email {
		t.Fatalf("unexpected user: %+v", resp.User)
	}

	_, err = serve(t, h.Me, call{method: http.MethodGet, target: "/users/me"})
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("anonymous caller should be refused, got %v", err)
	}
}

func TestUserHandler_UpdateRole(t *testing.T) {
	var gotID string
	var gotRole domain.Role
	stub := &stubUserService{
		updateRoleFn: func(ctx context.Context, id string, role domain.Role) error {
			gotID, gotRole = id, role
			return nil
		},
	}
	h := NewUserHandler(stub)

	rec, err := serve(t, h.UpdateRole, jsonCall(http.MethodPatch, "/users/u1", `{"role":"MANAGER"}`).
		as(adminClaim).with(map[string]string{"id": "u1"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || gotID != "u1" || gotRole != domain.RoleManager {
		t.Fatalf("expected 204 with MANAGER for u1, got %d %q %q", rec.Code, gotID, gotRole)
	}
}

func TestUserHandler_UpdateRole_UnknownRole(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	_, err := serve(t, h.UpdateRole, jsonCall(http.MethodPatch, "/users/u1", `{"role":"OWNER"}`).
		as(adminClaim).with(map[string]string{"id": "u1"}))
	if code := httpCode(t, err); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}
