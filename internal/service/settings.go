// Package service provides business logic between API handlers and data
// stores: the mutation guard, validation, and fire-and-forget auditing wrap
// every administrative write here.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/domain"
	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"
)

// SettingStore is the data-access interface SettingService depends on.
// It reuses domain.SettingService since the method sets are identical.
type SettingStore = domain.SettingService

// Compile-time check: *SettingService must satisfy domain.SettingService.
var _ domain.SettingService = (*SettingService)(nil)

// SettingService wraps SettingStore with authorization, validation, and
// audit. Deny decisions happen before any storage access: a rejected check
// produces no document write, no history row, and no audit entry.
type SettingService struct {
	store SettingStore
	audit AuditEnqueuer
	log   *logrus.Logger
}

// NewSettingService creates a SettingService.
func NewSettingService(store SettingStore, audit AuditEnqueuer, log *logrus.Logger) *SettingService {
	return &SettingService{store: store, audit: audit, log: log}
}

// GetSetting returns a single setting (pass-through).
func (s *SettingService) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	return s.store.GetSetting(ctx, key)
}

// ListSettings returns a paginated setting list (pass-through).
func (s *SettingService) ListSettings(
	ctx context.Context, category string, limit, offset int,
) ([]models.Setting, bool, error) {
	return s.store.ListSettings(ctx, category, limit, offset)
}

// ListSettingHistory returns the change ledger for a key (pass-through).
func (s *SettingService) ListSettingHistory(
	ctx context.Context, key string, limit, offset int,
) ([]models.SettingChange, bool, error) {
	return s.store.ListSettingHistory(ctx, key, limit, offset)
}

// UpdateSetting applies a guarded, validated, audited setting write.
func (s *SettingService) UpdateSetting(
	ctx context.Context, actor models.Actor, key string, req models.UpdateSettingRequest,
) (*models.SettingChange, error) {
	if !rbac.CanPerform(actor.Role, rbac.ActionSettingUpdate) {
		logDenied(s.log, actor, rbac.ActionSettingUpdate)
		return nil, models.ErrForbidden
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	change, err := s.store.UpdateSetting(ctx, actor, key, req)
	if err != nil {
		return nil, err
	}

	auditAsync(s.audit, actor, rbac.ActionSettingUpdate, "setting", key,
		models.NewChangeDetail(change.Before, change.After, req.Reason).
			With("version_after", change.VersionAfter))

	return change, nil
}

// RollbackSetting restores a prior snapshot as a new version.
func (s *SettingService) RollbackSetting(
	ctx context.Context, actor models.Actor, key string, req models.RollbackSettingRequest,
) (*models.SettingChange, error) {
	if !rbac.CanPerform(actor.Role, rbac.ActionSettingRollback) {
		logDenied(s.log, actor, rbac.ActionSettingRollback)
		return nil, models.ErrForbidden
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	change, err := s.store.RollbackSetting(ctx, actor, key, req)
	if err != nil {
		return nil, err
	}

	auditAsync(s.audit, actor, rbac.ActionSettingRollback, "setting", key,
		models.NewChangeDetail(change.Before, change.After, req.Reason).
			With("version_after", change.VersionAfter).
			With("rolled_back_to", req.ChangeID))

	return change, nil
}

// logDenied records a rejected authorization check. A denial leaves no audit
// entry (nothing happened), so the log is its only trace.
func logDenied(log *logrus.Logger, actor models.Actor, action rbac.Action) {
	if log == nil {
		return
	}

	log.WithFields(logrus.Fields{
		"actor_uid": actor.UID,
		"role":      string(actor.Role),
		"action":    string(action),
	}).Warn("action denied")
}

// auditAsync enqueues an audit entry for a completed mutation. Fire and
// forget: the caller's result is already decided and never waits on this.
func auditAsync(
	q AuditEnqueuer, actor models.Actor, action rbac.Action,
	resourceType, resourceID string, detail models.AuditDetail,
) {
	if q == nil {
		return
	}

	var rid *string
	if resourceID != "" {
		rid = &resourceID
	}

	q.Enqueue(&models.AuditEntry{
		ActorUID:     actor.UID,
		ActorEmail:   actor.Email,
		ActorRole:    string(actor.Role),
		Action:       string(action),
		ResourceType: resourceType,
		ResourceID:   rid,
		Detail:       detail,
	})
}
