package service

import (
	"context"
	"errors"
	"testing"

	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"
)

func userFixture(uid, rawRole string, status models.UserStatus) *models.User {
	u := &models.User{UID: uid, Email: uid + "@folioreads.com", Status: status, RawRole: rawRole}
	u.Normalize()
	return u
}

func TestUserService_UpdateUserStatus(t *testing.T) {
	tests := []struct {
		name       string
		actor      models.Actor
		status     models.UserStatus
		wantErr    error
		wantAction string
	}{
		{name: "suspend", actor: adminActor(), status: models.UserStatusSuspended, wantAction: "suspend_user"},
		{name: "activate", actor: adminActor(), status: models.UserStatusActive, wantAction: "activate_user"},
		{name: "disable", actor: adminActor(), status: models.UserStatusDisabled, wantAction: "disable_user"},
		{name: "unknown status rejected", actor: adminActor(), status: "banned", wantErr: &models.ValidationError{}},
		{name: "no role denied", actor: models.Actor{UID: "nobody"}, status: models.UserStatusSuspended, wantErr: models.ErrForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockUserStore{
				getUser: func(_ context.Context, uid string) (*models.User, error) {
					return userFixture(uid, "", models.UserStatusActive), nil
				},
				updateUserStatus: func(_ context.Context, _ models.Actor, uid string, status models.UserStatus) (*models.User, error) {
					return userFixture(uid, "", status), nil
				},
			}
			audit := &mockEnqueuer{}
			svc := NewUserService(store, audit, testLogger())

			user, err := svc.UpdateUserStatus(context.Background(), tc.actor, "u-1",
				models.UpdateUserStatusRequest{Status: tc.status, Reason: "policy"})

			if tc.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if models.IsValidation(tc.wantErr) {
					if !models.IsValidation(err) {
						t.Fatalf("expected validation error, got %v", err)
					}
				} else if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got %v, want %v", err, tc.wantErr)
				}
				if len(store.getCalls()) != 0 {
					t.Errorf("store should not be touched, got %v", store.getCalls())
				}
				if len(audit.getEntries()) != 0 {
					t.Error("audit should not be enqueued on denial")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Status != tc.status {
				t.Errorf("status = %q, want %q", user.Status, tc.status)
			}

			entries := audit.getEntries()
			if len(entries) != 1 {
				t.Fatalf("expected 1 audit entry, got %d", len(entries))
			}
			if entries[0].Action != tc.wantAction {
				t.Errorf("audit action = %q, want %q", entries[0].Action, tc.wantAction)
			}
			if entries[0].Detail["before"] != "active" {
				t.Errorf("audit before = %v, want active", entries[0].Detail["before"])
			}
			if entries[0].Detail["after"] != string(tc.status) {
				t.Errorf("audit after = %v, want %q", entries[0].Detail["after"], tc.status)
			}
		})
	}
}

func TestUserService_AssignAdminRole(t *testing.T) {
	store := &mockUserStore{
		getUser: func(_ context.Context, uid string) (*models.User, error) {
			return userFixture(uid, "content_admin", models.UserStatusActive), nil
		},
		setAdminRole: func(_ context.Context, _ models.Actor, uid string, role rbac.Role) (*models.User, error) {
			return userFixture(uid, string(role), models.UserStatusActive), nil
		},
	}
	audit := &mockEnqueuer{}
	svc := NewUserService(store, audit, testLogger())

	user, err := svc.AssignAdminRole(context.Background(), adminActor(), "u-1",
		models.AssignRoleRequest{Role: rbac.RoleSuperAdmin, Reason: "promotion"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role == nil || *user.Role != rbac.RoleSuperAdmin {
		t.Errorf("role = %v, want super_admin", user.Role)
	}
	if user.UserType != models.UserTypeAdmin {
		t.Errorf("user type = %q, want admin", user.UserType)
	}

	entries := audit.getEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Action != "assign_role" {
		t.Errorf("audit action = %q, want assign_role", e.Action)
	}
	// The trail records the stored legacy string, not its normalized form.
	if e.Detail["before"] != "content_admin" {
		t.Errorf("audit before = %v, want content_admin", e.Detail["before"])
	}
	if e.Detail["after"] != "super_admin" {
		t.Errorf("audit after = %v, want super_admin", e.Detail["after"])
	}
}

func TestUserService_AssignLegacyRoleRejected(t *testing.T) {
	store := &mockUserStore{}
	svc := NewUserService(store, &mockEnqueuer{}, testLogger())

	_, err := svc.AssignAdminRole(context.Background(), adminActor(), "u-1",
		models.AssignRoleRequest{Role: rbac.Role("content_admin")})
	if !models.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.getCalls()) != 0 {
		t.Errorf("store should not be called, got %v", store.getCalls())
	}
}

func TestUserService_RevokeAdminRole(t *testing.T) {
	store := &mockUserStore{
		getUser: func(_ context.Context, uid string) (*models.User, error) {
			return userFixture(uid, "admin", models.UserStatusActive), nil
		},
		clearAdminRole: func(_ context.Context, _ models.Actor, uid string) (*models.User, error) {
			u := userFixture(uid, "", models.UserStatusActive)
			u.UserType = models.UserTypeReader
			return u, nil
		},
	}
	audit := &mockEnqueuer{}
	svc := NewUserService(store, audit, testLogger())

	user, err := svc.RevokeAdminRole(context.Background(), adminActor(), "u-1", "offboarding")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != nil {
		t.Errorf("role = %v, want nil", user.Role)
	}
	if user.UserType != models.UserTypeReader {
		t.Errorf("user type = %q, want reader", user.UserType)
	}

	entries := audit.getEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Action != "revoke_role" {
		t.Errorf("audit action = %q, want revoke_role", e.Action)
	}
	if e.Detail["before"] != "admin" {
		t.Errorf("audit before = %v, want admin", e.Detail["before"])
	}
	if e.Detail["after"] != nil {
		t.Errorf("audit after = %v, want nil", e.Detail["after"])
	}
	if e.Detail["reason"] != "offboarding" {
		t.Errorf("audit reason = %v, want offboarding", e.Detail["reason"])
	}
}

func TestUserService_RevokeUnknownUser(t *testing.T) {
	store := &mockUserStore{
		getUser: func(_ context.Context, _ string) (*models.User, error) {
			return nil, models.ErrUserNotFound
		},
	}
	audit := &mockEnqueuer{}
	svc := NewUserService(store, audit, testLogger())

	if _, err := svc.RevokeAdminRole(context.Background(), adminActor(), "ghost", ""); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
	if len(audit.getEntries()) != 0 {
		t.Error("failed mutation must not be audited")
	}
}

func TestUserService_UpdateAuthorStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     models.AuthorStatus
		wantAction string
	}{
		{name: "approve", status: models.AuthorStatusApproved, wantAction: "approve_author"},
		{name: "reject", status: models.AuthorStatusRejected, wantAction: "reject_author"},
		{name: "suspend", status: models.AuthorStatusSuspended, wantAction: "suspend_author"},
		{name: "back to review", status: models.AuthorStatusPending, wantAction: "reset_author"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockUserStore{
				getUser: func(_ context.Context, uid string) (*models.User, error) {
					u := userFixture(uid, "author", models.UserStatusActive)
					u.AuthorStatus = models.AuthorStatusPending
					return u, nil
				},
				updateAuthorStatus: func(_ context.Context, _ models.Actor, uid string, status models.AuthorStatus) (*models.User, error) {
					u := userFixture(uid, "author", models.UserStatusActive)
					u.AuthorStatus = status
					return u, nil
				},
			}
			audit := &mockEnqueuer{}
			svc := NewUserService(store, audit, testLogger())

			user, err := svc.UpdateAuthorStatus(context.Background(), adminActor(), "u-2",
				models.UpdateAuthorStatusRequest{Status: tc.status})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.AuthorStatus != tc.status {
				t.Errorf("author status = %q, want %q", user.AuthorStatus, tc.status)
			}

			entries := audit.getEntries()
			if len(entries) != 1 {
				t.Fatalf("expected 1 audit entry, got %d", len(entries))
			}
			if entries[0].Action != tc.wantAction {
				t.Errorf("audit action = %q, want %q", entries[0].Action, tc.wantAction)
			}
		})
	}
}
