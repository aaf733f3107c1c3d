package domain

import "testing"

func TestCanModify(t *testing.T) {
	cases := []struct {
		name  string
		claim Claim
		owner string
		allow bool
	}{
		{"owner", Claim{ID: "u1", Role: RoleManager}, "u1", true},
		{"admin on foreign article", Claim{ID: "a1", Role: RoleAdmin}, "u1", true},
		{"manager on foreign article", Claim{ID: "m1", Role: RoleManager}, "u1", false},
		{"user on foreign article", Claim{ID: "u2", Role: RoleUser}, "u1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanModify(tc.claim, tc.owner)
			if tc.allow && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tc.allow && err != ErrAccessDenied {
				t.Fatalf("expected ErrAccessDenied, got %v", err)
			}
		})
	}
}

func TestCanViewPrivate(t *testing.T) {
	if err := CanViewPrivate(Claim{ID: "m1", Role: RoleManager}, "u1"); err != nil {
		t.Fatalf("manager denied: %v", err)
	}
	if err := CanViewPrivate(Claim{ID: "u1", Role: RoleUser}, "u1"); err != nil {
		t.Fatalf("owner denied: %v", err)
	}
	if err := CanViewPrivate(Claim{ID: "u2", Role: RoleUser}, "u1"); err != ErrAccessDenied {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestDraftOwnerScope(t *testing.T) {
	if got := DraftOwnerScope(Claim{ID: "a1", Role: RoleAdmin}); got != "" {
		t.Fatalf("admin scope should be unrestricted, got %q", got)
	}
	if got := DraftOwnerScope(Claim{ID: "m1", Role: RoleManager}); got != "m1" {
		t.Fatalf("manager scope should be own id, got %q", got)
	}
}

func TestPublishRules(t *testing.T) {
	if err := CanPublishArticle(Claim{Role: RoleAdmin}); err != nil {
		t.Fatalf("admin cannot publish article: %v", err)
	}
	if err := CanPublishArticle(Claim{Role: RoleManager}); err != ErrNoPermissions {
		t.Fatalf("manager should not publish article, got %v", err)
	}
	if err := CanPublishComment(Claim{Role: RoleManager}); err != nil {
		t.Fatalf("manager cannot publish comment: %v", err)
	}
	if err := CanPublishComment(Claim{Role: RoleUser}); err != ErrNoPermissions {
		t.Fatalf("user should not publish comment, got %v", err)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleManager, RoleUser} {
		if !r.Valid() {
			t.Fatalf("%s should be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Fatalf("lower-case role should be invalid")
	}
}
