package domain

// Claim is the identity asserted by a verified token. It is built once per
// request and never mutated.
type Claim struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
}
