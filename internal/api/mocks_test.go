package api_test

import (
	"context"

	"github.com/folioreads/folio-admin/internal/models"
)

// mockSettingSvc returns configured responses for the setting endpoints.
type mockSettingSvc struct {
	getFn      func(ctx context.Context, key string) (*models.Setting, error)
	listFn     func(ctx context.Context, category string, limit, offset int) ([]models.Setting, bool, error)
	updateFn   func(ctx context.Context, actor models.Actor, key string, req models.UpdateSettingRequest) (*models.SettingChange, error)
	rollbackFn func(ctx context.Context, actor models.Actor, key string, req models.RollbackSettingRequest) (*models.SettingChange, error)
	historyFn  func(ctx context.Context, key string, limit, offset int) ([]models.SettingChange, bool, error)
}

func (m *mockSettingSvc) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	return m.getFn(ctx, key)
}

func (m *mockSettingSvc) ListSettings(ctx context.Context, category string, limit, offset int) ([]models.Setting, bool, error) {
	return m.listFn(ctx, category, limit, offset)
}

func (m *mockSettingSvc) UpdateSetting(ctx context.Context, actor models.Actor, key string, req models.UpdateSettingRequest) (*models.SettingChange, error) {
	return m.updateFn(ctx, actor, key, req)
}

func (m *mockSettingSvc) RollbackSetting(ctx context.Context, actor models.Actor, key string, req models.RollbackSettingRequest) (*models.SettingChange, error) {
	return m.rollbackFn(ctx, actor, key, req)
}

func (m *mockSettingSvc) ListSettingHistory(ctx context.Context, key string, limit, offset int) ([]models.SettingChange, bool, error) {
	return m.historyFn(ctx, key, limit, offset)
}

// mockUserSvc returns configured responses for the user endpoints.
type mockUserSvc struct {
	getFn          func(ctx context.Context, uid string) (*models.User, error)
	statusFn       func(ctx context.Context, actor models.Actor, uid string, req models.UpdateUserStatusRequest) (*models.User, error)
	assignFn       func(ctx context.Context, actor models.Actor, uid string, req models.AssignRoleRequest) (*models.User, error)
	revokeFn       func(ctx context.Context, actor models.Actor, uid, reason string) (*models.User, error)
	authorStatusFn func(ctx context.Context, actor models.Actor, uid string, req models.UpdateAuthorStatusRequest) (*models.User, error)
}

func (m *mockUserSvc) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return m.getFn(ctx, uid)
}

func (m *mockUserSvc) UpdateUserStatus(ctx context.Context, actor models.Actor, uid string, req models.UpdateUserStatusRequest) (*models.User, error) {
	return m.statusFn(ctx, actor, uid, req)
}

func (m *mockUserSvc) AssignAdminRole(ctx context.Context, actor models.Actor, uid string, req models.AssignRoleRequest) (*models.User, error) {
	return m.assignFn(ctx, actor, uid, req)
}

func (m *mockUserSvc) RevokeAdminRole(ctx context.Context, actor models.Actor, uid, reason string) (*models.User, error) {
	return m.revokeFn(ctx, actor, uid, reason)
}

func (m *mockUserSvc) UpdateAuthorStatus(ctx context.Context, actor models.Actor, uid string, req models.UpdateAuthorStatusRequest) (*models.User, error) {
	return m.authorStatusFn(ctx, actor, uid, req)
}

// mockAuditSvc returns configured responses for the audit endpoints.
type mockAuditSvc struct {
	queryFn func(ctx context.Context, actor models.Actor, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

func (m *mockAuditSvc) QueryAudit(ctx context.Context, actor models.Actor, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	return m.queryFn(ctx, actor, opts)
}
