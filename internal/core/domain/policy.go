package domain

// CanModify applies the ownership rule: the owner or an ADMIN may mutate.
func CanModify(claim Claim, ownerID string) error {
	if claim.Role == RoleAdmin || claim.ID == ownerID {
		return nil
	}
	return ErrAccessDenied
}

// CanViewPrivate reports whether claim may read an unpublished article.
func CanViewPrivate(claim Claim, ownerID string) error {
	if claim.Role.Elevated() || claim.ID == ownerID {
		return nil
	}
	return ErrAccessDenied
}

// DraftOwnerScope returns the owner filter for draft listings: empty for an
// ADMIN (all drafts), the caller's ID otherwise.
func DraftOwnerScope(claim Claim) string {
	if claim.Role == RoleAdmin {
		return ""
	}
	return claim.ID
}

// CanPublishArticle reports whether claim may move an article out of draft.
func CanPublishArticle(claim Claim) error {
	if claim.Role != RoleAdmin {
		return ErrNoPermissions
	}
	return nil
}

// CanPublishComment reports whether claim may move a comment out of draft.
func CanPublishComment(claim Claim) error {
	if !claim.Role.Elevated() {
		return ErrNoPermissions
	}
	return nil
}
