package models

import "time"

// AuditEntry is one write-once record in the platform-wide audit log.
// Ordering across actors is established by the server-assigned CreatedAt.
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

// AuditQueryOpts holds filters for querying the audit log.
type AuditQueryOpts struct {
	ActorUID     string
	Action       string
	ResourceType string
	ResourceID   string
	Since        *time.Time
	Until        *time.Time
	Limit        int
	Offset       int
}

// AuditDetail is the schemaless payload attached to an audit entry.
// The wire shape stays an open key/value map, but call sites build it through
// NewChangeDetail so every mutation carries at least before/after/reason.
type AuditDetail map[string]any

// NewChangeDetail builds the minimum detail payload for a state change.
func NewChangeDetail(before, after any, reason string) AuditDetail {
	d := AuditDetail{
		"before": before,
		"after":  after,
	}
	if reason != "" {
		d["reason"] = reason
	}
	return d
}

// With adds an extra field and returns the detail for chaining.
func (d AuditDetail) With(key string, value any) AuditDetail {
	d[key] = value
	return d
}
