package models

import (
	"time"

	"github.com/folioreads/folio-admin/internal/rbac"
)

// UserStatus is the account standing of a platform user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDisabled  UserStatus = "disabled"
)

// Valid reports whether s is a known user status.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusDisabled:
		return true
	}
	return false
}

// UserType is the coarse account classification shown in the console.
type UserType string

const (
	UserTypeAdmin  UserType = "admin"
	UserTypeAuthor UserType = "author"
	UserTypeReader UserType = "reader"
)

// AuthorStatus tracks an account through the author-approval workflow.
type AuthorStatus string

const (
	AuthorStatusPending   AuthorStatus = "pending"
	AuthorStatusApproved  AuthorStatus = "approved"
	AuthorStatusRejected  AuthorStatus = "rejected"
	AuthorStatusSuspended AuthorStatus = "suspended"
)

// Valid reports whether s is a known author status.
func (s AuthorStatus) Valid() bool {
	switch s {
	case AuthorStatusPending, AuthorStatusApproved, AuthorStatusRejected, AuthorStatusSuspended:
		return true
	}
	return false
}

// User is a platform account as seen by the admin console.
//
// RawRole holds whatever string the account carries in storage, legacy values
// included; Role is its normalized form and the only field authorization may
// look at. UserType may be empty in storage for pre-migration rows; stores
// derive it on read via DeriveUserType and never rewrite the row.
type User struct {
	UID          string       `json:"uid"`
	Email        string       `json:"email"`
	DisplayName  string       `json:"display_name,omitempty"`
	Status       UserStatus   `json:"status"`
	RawRole      string       `json:"-"`
	Role         *rbac.Role   `json:"role,omitempty"`
	UserType     UserType     `json:"user_type,omitempty"`
	AuthorStatus AuthorStatus `json:"author_status,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	UpdatedBy    string       `json:"updated_by,omitempty"`
}

// DeriveUserType resolves the user type for rows written before user_type
// existed. A stored value always wins; otherwise the type is derived from the
// raw role string. Read-time only; the stored row is never backfilled.
func DeriveUserType(rawRole string, stored UserType) UserType {
	if stored != "" {
		return stored
	}
	if _, ok := rbac.Normalize(rawRole); ok {
		return UserTypeAdmin
	}
	switch rawRole {
	case "author":
		return UserTypeAuthor
	case "reader", "reader(user)", "user":
		return UserTypeReader
	}
	return ""
}

// Normalize populates Role and UserType from RawRole. Called by stores after
// scanning a row.
func (u *User) Normalize() {
	if role, ok := rbac.Normalize(u.RawRole); ok {
		u.Role = &role
	} else {
		u.Role = nil
	}
	u.UserType = DeriveUserType(u.RawRole, u.UserType)
}

// UpdateUserStatusRequest is the payload for PUT /users/:uid/status.
type UpdateUserStatusRequest struct {
	Status UserStatus `json:"status" binding:"required"`
	Reason string     `json:"reason"`
}

// Validate checks the requested status.
func (r UpdateUserStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return Validationf("unknown user status %q", string(r.Status))
	}
	return nil
}

// AssignRoleRequest is the payload for PUT /users/:uid/role.
type AssignRoleRequest struct {
	Role   rbac.Role `json:"role" binding:"required"`
	Reason string    `json:"reason"`
}

// Validate checks that the granted role is canonical. Legacy strings are
// not grantable, only foldable on read.
func (r AssignRoleRequest) Validate() error {
	if !r.Role.Valid() {
		return Validationf("role must be admin or super_admin")
	}
	return nil
}

// UpdateAuthorStatusRequest is the payload for PUT /users/:uid/author-status.
type UpdateAuthorStatusRequest struct {
	Status AuthorStatus `json:"status" binding:"required"`
	Reason string       `json:"reason"`
}

// Validate checks the requested author status.
func (r UpdateAuthorStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return Validationf("unknown author status %q", string(r.Status))
	}
	return nil
}
