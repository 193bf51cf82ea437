package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/domain"
	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"
)

// AuditQuerier is the data-access interface AuditService depends on.
type AuditQuerier interface {
	QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

var _ domain.AuditService = (*AuditService)(nil)

// AuditService gates audit log reads on the actor's role. The log itself is
// append-only; no mutation path exists at any layer.
type AuditService struct {
	store AuditQuerier
	log   *logrus.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(store AuditQuerier, log *logrus.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// QueryAudit returns filtered audit entries, newest first. Only super_admin
// may read the trail; plain admins are denied so they cannot observe each
// other's actions.
func (s *AuditService) QueryAudit(
	ctx context.Context, actor models.Actor, opts models.AuditQueryOpts,
) ([]models.AuditEntry, bool, error) {
	if !rbac.CanPerform(actor.Role, rbac.ActionViewAuditLog) {
		logDenied(s.log, actor, rbac.ActionViewAuditLog)
		return nil, false, models.ErrForbidden
	}

	return s.store.QueryAudit(ctx, opts)
}
