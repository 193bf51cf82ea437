package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/domain"
	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"
)

// UserStore is the data-access interface UserService depends on.
type UserStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
	UpdateUserStatus(ctx context.Context, actor models.Actor, uid string, status models.UserStatus) (*models.User, error)
	SetAdminRole(ctx context.Context, actor models.Actor, uid string, role rbac.Role) (*models.User, error)
	ClearAdminRole(ctx context.Context, actor models.Actor, uid string) (*models.User, error)
	UpdateAuthorStatus(ctx context.Context, actor models.Actor, uid string, status models.AuthorStatus) (*models.User, error)
}

var _ domain.UserService = (*UserService)(nil)

// UserService wraps UserStore with authorization, validation, and audit.
type UserService struct {
	store UserStore
	audit AuditEnqueuer
	log   *logrus.Logger
}

// NewUserService creates a UserService.
func NewUserService(store UserStore, audit AuditEnqueuer, log *logrus.Logger) *UserService {
	return &UserService{store: store, audit: audit, log: log}
}

// GetUser returns a single user (pass-through).
func (s *UserService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.store.GetUser(ctx, uid)
}

// statusAction maps the requested account standing to its audit action.
var statusAction = map[models.UserStatus]rbac.Action{
	models.UserStatusActive:    rbac.ActionActivateUser,
	models.UserStatusSuspended: rbac.ActionSuspendUser,
	models.UserStatusDisabled:  rbac.ActionDisableUser,
}

// UpdateUserStatus changes an account's standing. The action recorded (and
// checked) is named after the requested target state, not a generic "update".
func (s *UserService) UpdateUserStatus(
	ctx context.Context, actor models.Actor, uid string, req models.UpdateUserStatusRequest,
) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	action := statusAction[req.Status]
	if !rbac.CanPerform(actor.Role, action) {
		logDenied(s.log, actor, action)
		return nil, models.ErrForbidden
	}

	before, err := s.store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	user, err := s.store.UpdateUserStatus(ctx, actor, uid, req.Status)
	if err != nil {
		return nil, err
	}

	auditAsync(s.audit, actor, action, "user", uid,
		models.NewChangeDetail(string(before.Status), string(user.Status), req.Reason))

	return user, nil
}

// AssignAdminRole grants a canonical admin role to an account.
func (s *UserService) AssignAdminRole(
	ctx context.Context, actor models.Actor, uid string, req models.AssignRoleRequest,
) (*models.User, error) {
	if !rbac.CanPerform(actor.Role, rbac.ActionAssignRole) {
		logDenied(s.log, actor, rbac.ActionAssignRole)
		return nil, models.ErrForbidden
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	before, err := s.store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	user, err := s.store.SetAdminRole(ctx, actor, uid, req.Role)
	if err != nil {
		return nil, err
	}

	auditAsync(s.audit, actor, rbac.ActionAssignRole, "user", uid,
		models.NewChangeDetail(roleOrNil(before), string(req.Role), req.Reason))

	return user, nil
}

// RevokeAdminRole strips any admin role from an account, reverting it to a
// plain reader.
func (s *UserService) RevokeAdminRole(
	ctx context.Context, actor models.Actor, uid, reason string,
) (*models.User, error) {
	if !rbac.CanPerform(actor.Role, rbac.ActionRevokeRole) {
		logDenied(s.log, actor, rbac.ActionRevokeRole)
		return nil, models.ErrForbidden
	}

	before, err := s.store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	user, err := s.store.ClearAdminRole(ctx, actor, uid)
	if err != nil {
		return nil, err
	}

	auditAsync(s.audit, actor, rbac.ActionRevokeRole, "user", uid,
		models.NewChangeDetail(roleOrNil(before), nil, reason))

	return user, nil
}

// authorAction maps the requested author standing to its audit action.
var authorAction = map[models.AuthorStatus]rbac.Action{
	models.AuthorStatusApproved:  rbac.ActionApproveAuthor,
	models.AuthorStatusRejected:  rbac.ActionRejectAuthor,
	models.AuthorStatusSuspended: rbac.ActionSuspendAuthor,
	models.AuthorStatusPending:   rbac.ActionResetAuthor,
}

// UpdateAuthorStatus moves an account through the author-approval workflow.
// Any transition between known states is allowed; the console decides which
// ones to offer.
func (s *UserService) UpdateAuthorStatus(
	ctx context.Context, actor models.Actor, uid string, req models.UpdateAuthorStatusRequest,
) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	action := authorAction[req.Status]
	if !rbac.CanPerform(actor.Role, action) {
		logDenied(s.log, actor, action)
		return nil, models.ErrForbidden
	}

	before, err := s.store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	user, err := s.store.UpdateAuthorStatus(ctx, actor, uid, req.Status)
	if err != nil {
		return nil, err
	}

	auditAsync(s.audit, actor, action, "user", uid,
		models.NewChangeDetail(authorStatusOrNil(before), string(user.AuthorStatus), req.Reason))

	return user, nil
}

// roleOrNil returns the account's stored role string, or nil when it has none.
// Legacy strings are reported verbatim so the audit trail reflects what was
// actually replaced.
func roleOrNil(u *models.User) any {
	if u.RawRole == "" {
		return nil
	}
	return u.RawRole
}

func authorStatusOrNil(u *models.User) any {
	if u.AuthorStatus == "" {
		return nil
	}
	return string(u.AuthorStatus)
}
