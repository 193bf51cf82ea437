// Package domain defines the canonical service interfaces shared across the
// API layer and tests. Consumers should depend on these interfaces rather
// than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/folioreads/folio-admin/internal/models"
)

// SettingService defines all versioned-configuration operations.
type SettingService interface {
	GetSetting(ctx context.Context, key string) (*models.Setting, error)
	ListSettings(ctx context.Context, category string, limit, offset int) ([]models.Setting, bool, error)
	UpdateSetting(ctx context.Context, actor models.Actor, key string, req models.UpdateSettingRequest) (*models.SettingChange, error)
	RollbackSetting(ctx context.Context, actor models.Actor, key string, req models.RollbackSettingRequest) (*models.SettingChange, error)
	ListSettingHistory(ctx context.Context, key string, limit, offset int) ([]models.SettingChange, bool, error)
}

// UserService defines the admin-console user mutations.
type UserService interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
	UpdateUserStatus(ctx context.Context, actor models.Actor, uid string, req models.UpdateUserStatusRequest) (*models.User, error)
	AssignAdminRole(ctx context.Context, actor models.Actor, uid string, req models.AssignRoleRequest) (*models.User, error)
	RevokeAdminRole(ctx context.Context, actor models.Actor, uid, reason string) (*models.User, error)
	UpdateAuthorStatus(ctx context.Context, actor models.Actor, uid string, req models.UpdateAuthorStatusRequest) (*models.User, error)
}

// AuditService defines audit log queries, gated on the actor's role.
type AuditService interface {
	QueryAudit(ctx context.Context, actor models.Actor, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

// Auditor is the minimal interface for recording audit entries.
// The audit worker uses it for fire-and-forget persistence.
type Auditor interface {
	RecordAudit(ctx context.Context, e *models.AuditEntry) error
}
