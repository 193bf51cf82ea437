package client

import (
	"encoding/json"
	"time"
)

// Setting is the current state of one platform configuration key.
type Setting struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	ValueType string          `json:"value_type"`
	Category  string          `json:"category"`
	Editable  bool            `json:"editable"`
	Sensitive bool            `json:"sensitive"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	UpdatedBy string          `json:"updated_by"`
}

// Snapshot is a value and its type captured at mutation time.
type Snapshot struct {
	Value     json.RawMessage `json:"value"`
	ValueType string          `json:"value_type"`
}

// SettingChange is one append-only history entry for a setting.
type SettingChange struct {
	ID           int64     `json:"id"`
	SettingKey   string    `json:"setting_key"`
	Action       string    `json:"action"`
	ActorUID     string    `json:"actor_uid"`
	VersionAfter int64     `json:"version_after"`
	Before       Snapshot  `json:"before"`
	After        Snapshot  `json:"after"`
	Reason       *string   `json:"reason,omitempty"`
	ChangedAt    time.Time `json:"changed_at"`
}

// UpdateSettingRequest is the payload for updating a setting.
// ExpectedVersion is the version from the caller's last read; zero disables
// the optimistic-concurrency check.
type UpdateSettingRequest struct {
	Value           json.RawMessage `json:"value"`
	ValueType       string          `json:"value_type"`
	ExpectedVersion int64           `json:"expected_version,omitempty"`
	Reason          string          `json:"reason,omitempty"`
}

// RollbackSettingRequest is the payload for rolling a setting back to a prior
// history entry.
type RollbackSettingRequest struct {
	ChangeID int64  `json:"change_id"`
	Reason   string `json:"reason,omitempty"`
}

// SettingListOptions filters and paginates setting listings.
type SettingListOptions struct {
	Category string
	Limit    int
	Offset   int
}

// User is a platform account as seen by the admin console.
type User struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	Status       string    `json:"status"`
	Role         *string   `json:"role,omitempty"`
	UserType     string    `json:"user_type,omitempty"`
	AuthorStatus string    `json:"author_status,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UpdatedBy    string    `json:"updated_by,omitempty"`
}

// UpdateUserStatusRequest sets an account's standing.
type UpdateUserStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// AssignRoleRequest grants a canonical admin role ("admin" or "super_admin").
type AssignRoleRequest struct {
	Role   string `json:"role"`
	Reason string `json:"reason,omitempty"`
}

// UpdateAuthorStatusRequest moves an account through the author-approval
// workflow.
type UpdateAuthorStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// AuditEntry is one record in the platform-wide audit log.
type AuditEntry struct {
	ID           int64          `json:"id"`
	ActorUID     string         `json:"actor_uid"`
	ActorEmail   string         `json:"actor_email"`
	ActorRole    string         `json:"actor_role"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   *string        `json:"resource_id,omitempty"`
	Detail       map[string]any `json:"detail,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditQueryOptions filters and paginates audit log queries.
type AuditQueryOptions struct {
	ActorUID     string
	Action       string
	ResourceType string
	ResourceID   string
	Since        *time.Time
	Until        *time.Time
	Limit        int
	Offset       int
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	FeedClients   int     `json:"feed_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
