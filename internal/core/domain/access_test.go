package domain

import (
	"errors"
	"testing"
)

func TestGuard_NoClaim(t *testing.T) {
	for _, g := range []Guard{NewGuard(), NewGuard(RoleAdmin)} {
		err := g.Allow(nil)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if err.Error() != "User not authorized" {
			t.Fatalf("unexpected reason: %q", err.Error())
		}
	}
}

func TestGuard_EmptyRolesAdmitsAnyIdentity(t *testing.T) {
	g := NewGuard()
	for _, r := range []Role{RoleAdmin, RoleManager, RoleUser} {
		if err := g.Allow(&Claim{ID: "1", Role: r}); err != nil {
			t.Fatalf("role %s rejected: %v", r, err)
		}
	}
}

func TestGuard_RoleOutsideSet(t *testing.T) {
	g := NewGuard(RoleAdmin, RoleManager)

	err := g.Allow(&Claim{ID: "1", Role: RoleUser})
	if err != ErrNoPermissions {
		t.Fatalf("expected ErrNoPermissions, got %v", err)
	}
	if err.Error() != "No permissions" {
		t.Fatalf("unexpected reason: %q", err.Error())
	}

	if err := g.Allow(&Claim{ID: "2", Role: RoleManager}); err != nil {
		t.Fatalf("manager rejected: %v", err)
	}
}

func TestGuard_ZeroValue(t *testing.T) {
	var g Guard
	if err := g.Allow(&Claim{ID: "1", Role: RoleUser}); err != nil {
		t.Fatalf("zero guard rejected identity: %v", err)
	}
}
