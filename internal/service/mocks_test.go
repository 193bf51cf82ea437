package service

import (
	"context"
	"sync"

	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"
)

// mockSettingStore records calls and returns configured responses.
type mockSettingStore struct {
	mu    sync.Mutex
	calls []string

	getSetting         func(ctx context.Context, key string) (*models.Setting, error)
	listSettings       func(ctx context.Context, category string, limit, offset int) ([]models.Setting, bool, error)
	updateSetting      func(ctx context.Context, actor models.Actor, key string, req models.UpdateSettingRequest) (*models.SettingChange, error)
	rollbackSetting    func(ctx context.Context, actor models.Actor, key string, req models.RollbackSettingRequest) (*models.SettingChange, error)
	listSettingHistory func(ctx context.Context, key string, limit, offset int) ([]models.SettingChange, bool, error)
}

func (m *mockSettingStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockSettingStore) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.calls))
	copy(cp, m.calls)
	return cp
}

func (m *mockSettingStore) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	m.record("GetSetting")
	return m.getSetting(ctx, key)
}

func (m *mockSettingStore) ListSettings(ctx context.Context, category string, limit, offset int) ([]models.Setting, bool, error) {
	m.record("ListSettings")
	return m.listSettings(ctx, category, limit, offset)
}

func (m *mockSettingStore) UpdateSetting(ctx context.Context, actor models.Actor, key string, req models.UpdateSettingRequest) (*models.SettingChange, error) {
	m.record("UpdateSetting")
	return m.updateSetting(ctx, actor, key, req)
}

func (m *mockSettingStore) RollbackSetting(ctx context.Context, actor models.Actor, key string, req models.RollbackSettingRequest) (*models.SettingChange, error) {
	m.record("RollbackSetting")
	return m.rollbackSetting(ctx, actor, key, req)
}

func (m *mockSettingStore) ListSettingHistory(ctx context.Context, key string, limit, offset int) ([]models.SettingChange, bool, error) {
	m.record("ListSettingHistory")
	return m.listSettingHistory(ctx, key, limit, offset)
}

// mockUserStore records calls and returns configured responses.
type mockUserStore struct {
	mu    sync.Mutex
	calls []string

	getUser            func(ctx context.Context, uid string) (*models.User, error)
	updateUserStatus   func(ctx context.Context, actor models.Actor, uid string, status models.UserStatus) (*models.User, error)
	setAdminRole       func(ctx context.Context, actor models.Actor, uid string, role rbac.Role) (*models.User, error)
	clearAdminRole     func(ctx context.Context, actor models.Actor, uid string) (*models.User, error)
	updateAuthorStatus func(ctx context.Context, actor models.Actor, uid string, status models.AuthorStatus) (*models.User, error)
}

func (m *mockUserStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockUserStore) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.calls))
	copy(cp, m.calls)
	return cp
}

func (m *mockUserStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	m.record("GetUser")
	return m.getUser(ctx, uid)
}

func (m *mockUserStore) UpdateUserStatus(ctx context.Context, actor models.Actor, uid string, status models.UserStatus) (*models.User, error) {
	m.record("UpdateUserStatus")
	return m.updateUserStatus(ctx, actor, uid, status)
}

func (m *mockUserStore) SetAdminRole(ctx context.Context, actor models.Actor, uid string, role rbac.Role) (*models.User, error) {
	m.record("SetAdminRole")
	return m.setAdminRole(ctx, actor, uid, role)
}

func (m *mockUserStore) ClearAdminRole(ctx context.Context, actor models.Actor, uid string) (*models.User, error) {
	m.record("ClearAdminRole")
	return m.clearAdminRole(ctx, actor, uid)
}

func (m *mockUserStore) UpdateAuthorStatus(ctx context.Context, actor models.Actor, uid string, status models.AuthorStatus) (*models.User, error) {
	m.record("UpdateAuthorStatus")
	return m.updateAuthorStatus(ctx, actor, uid, status)
}

// mockAuditQuerier returns configured audit entries.
type mockAuditQuerier struct {
	mu    sync.Mutex
	calls []string

	queryAudit func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

func (m *mockAuditQuerier) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.calls))
	copy(cp, m.calls)
	return cp
}

func (m *mockAuditQuerier) QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	m.mu.Lock()
	m.calls = append(m.calls, "QueryAudit")
	m.mu.Unlock()
	return m.queryAudit(ctx, opts)
}

// mockAuditor records audit writes and optionally fails them.
type mockAuditor struct {
	mu      sync.Mutex
	entries []models.AuditEntry

	err error
}

func (m *mockAuditor) RecordAudit(ctx context.Context, e *models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *mockAuditor) getEntries() []models.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]models.AuditEntry, len(m.entries))
	copy(cp, m.entries)
	return cp
}

// mockEnqueuer records enqueued entries synchronously.
type mockEnqueuer struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (m *mockEnqueuer) Enqueue(e *models.AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
}

func (m *mockEnqueuer) getEntries() []models.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]models.AuditEntry, len(m.entries))
	copy(cp, m.entries)
	return cp
}

// mockBroadcaster records broadcast entries.
type mockBroadcaster struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (m *mockBroadcaster) BroadcastAudit(e *models.AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
}

func (m *mockBroadcaster) getEntries() []models.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]models.AuditEntry, len(m.entries))
	copy(cp, m.entries)
	return cp
}
