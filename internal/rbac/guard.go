package rbac

// Action identifies an administrative action checked against an actor's role
// and recorded in the audit log under the same name.
type Action string

// Closed action vocabulary.
const (
	ActionAssignRole      Action = "assign_role"
	ActionRevokeRole      Action = "revoke_role"
	ActionActivateUser    Action = "activate_user"
	ActionSuspendUser     Action = "suspend_user"
	ActionDisableUser     Action = "disable_user"
	ActionApproveAuthor   Action = "approve_author"
	ActionRejectAuthor    Action = "reject_author"
	ActionSuspendAuthor   Action = "suspend_author"
	ActionResetAuthor     Action = "reset_author"
	ActionSettingUpdate   Action = "setting_update"
	ActionSettingRollback Action = "setting_rollback"
	ActionViewAuditLog    Action = "view_audit_log"
)

// CanPerform reports whether role may perform action.
//
// Both tiers are authorized for every standard mutation; only super_admin may
// read the platform-wide audit log, so an admin cannot observe (or launder)
// other admins' actions. A zero or unknown role may do nothing.
func CanPerform(role Role, action Action) bool {
	switch role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return action != ActionViewAuditLog
	default:
		return false
	}
}
