package models

import "github.com/folioreads/folio-admin/internal/rbac"

// Actor is the authenticated administrator attributed to a mutation.
// It is built per request by the auth middleware and never persisted;
// audit entries reference it by uid/email only.
type Actor struct {
	UID   string    `json:"uid"`
	Email string    `json:"email"`
	Role  rbac.Role `json:"role"`
}
