package api

import "github.com/folioreads/folio-admin/internal/domain"

// Handler dependencies are the canonical domain interfaces.
type (
	SettingService = domain.SettingService
	UserService    = domain.UserService
	AuditService   = domain.AuditService
)
