package models

import (
	"encoding/json"
	"time"
)

// ValueType is the declared type of a setting value.
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeJSON    ValueType = "json"
)

// Valid reports whether t is a known value type.
func (t ValueType) Valid() bool {
	switch t {
	case ValueTypeString, ValueTypeNumber, ValueTypeBoolean, ValueTypeJSON:
		return true
	}
	return false
}

// CheckValue verifies that raw is a JSON document matching the declared type.
func (t ValueType) CheckValue(raw json.RawMessage) error {
	switch t {
	case ValueTypeString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Validationf("value is not a string")
		}
	case ValueTypeNumber:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return Validationf("value is not a number")
		}
	case ValueTypeBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Validationf("value is not a boolean")
		}
	case ValueTypeJSON:
		if !json.Valid(raw) {
			return Validationf("value is not valid JSON")
		}
	default:
		return Validationf("unknown value type %q", string(t))
	}
	return nil
}

// Setting is the current state of one platform configuration key.
// Version increments by exactly one on every successful write, including
// rollbacks, and never decreases.
type Setting struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	ValueType ValueType       `json:"value_type"`
	Category  string          `json:"category"`
	Editable  bool            `json:"editable"`
	Sensitive bool            `json:"sensitive"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	UpdatedBy string          `json:"updated_by"`
}

// Snapshot is an immutable copy of a value and its type captured at mutation
// time. It is a copy, never a reference into the live row, so later writes
// cannot alter historical entries.
type Snapshot struct {
	Value     json.RawMessage `json:"value"`
	ValueType ValueType       `json:"value_type"`
}

// ChangeAction distinguishes the two kinds of setting history entries.
type ChangeAction string

const (
	ChangeActionUpdate   ChangeAction = "update"
	ChangeActionRollback ChangeAction = "rollback"
)

// SettingChange is one append-only history entry for a setting. Entries are
// created exactly once per successful write and never mutated or deleted.
type SettingChange struct {
	ID           int64        `json:"id"`
	SettingKey   string       `json:"setting_key"`
	Action       ChangeAction `json:"action"`
	ActorUID     string       `json:"actor_uid"`
	VersionAfter int64        `json:"version_after"`
	Before       Snapshot     `json:"before"`
	After        Snapshot     `json:"after"`
	Reason       *string      `json:"reason,omitempty"`
	ChangedAt    time.Time    `json:"changed_at"`
}

// UpdateSettingRequest is the payload for PUT /settings/:key.
// ExpectedVersion is the optimistic-concurrency token from the caller's last
// read; zero means "whatever version is current at write time".
type UpdateSettingRequest struct {
	Value           json.RawMessage `json:"value" binding:"required"`
	ValueType       ValueType       `json:"value_type" binding:"required"`
	ExpectedVersion int64           `json:"expected_version"`
	Reason          string          `json:"reason"`
}

// Validate checks the declared type and that the value conforms to it.
func (r UpdateSettingRequest) Validate() error {
	if !r.ValueType.Valid() {
		return Validationf("unknown value type %q", string(r.ValueType))
	}
	if len(r.Value) == 0 {
		return Validationf("value is required")
	}
	if r.ExpectedVersion < 0 {
		return Validationf("expected_version must not be negative")
	}
	return r.ValueType.CheckValue(r.Value)
}

// RollbackSettingRequest is the payload for POST /settings/:key/rollback.
type RollbackSettingRequest struct {
	ChangeID int64  `json:"change_id" binding:"required"`
	Reason   string `json:"reason"`
}

// Validate checks the target change reference.
func (r RollbackSettingRequest) Validate() error {
	if r.ChangeID <= 0 {
		return Validationf("change_id is required")
	}
	return nil
}
