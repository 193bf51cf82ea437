package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/folioreads/folio-admin/internal/models"
)

// AuditStore provides data access for the append-only admin_audit_log table.
// Entries are write-once: this store exposes no update or delete.
type AuditStore struct {
	Base
}

// NewAuditStore creates an AuditStore.
func NewAuditStore(base Base) *AuditStore {
	return &AuditStore{Base: base}
}

// RecordAudit inserts an audit log entry. The timestamp is server-assigned.
func (s *AuditStore) RecordAudit(ctx context.Context, e *models.AuditEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var detailJSON []byte
	if e.Detail != nil {
		var err error

		detailJSON, err = json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("marshaling audit detail: %w", err)
		}
	}

	_, err := s.Pool.Exec(ctx, `
		INSERT INTO admin_audit_log
			(actor_uid, actor_email, actor_role, action, resource_type, resource_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ActorUID, e.ActorEmail, e.ActorRole, e.Action, e.ResourceType, e.ResourceID, detailJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}

// buildAuditFilter builds a WHERE clause and args from AuditQueryOpts.
func buildAuditFilter(opts models.AuditQueryOpts) (where string, args []any, nextArg int) {
	var conditions []string
	argIdx := 1

	add := func(cond string, val any) {
		conditions = append(conditions, cond+" $"+strconv.Itoa(argIdx))
		args = append(args, val)
		argIdx++
	}

	if opts.ActorUID != "" {
		add("actor_uid =", opts.ActorUID)
	}
	if opts.Action != "" {
		add("action =", opts.Action)
	}
	if opts.ResourceType != "" {
		add("resource_type =", opts.ResourceType)
	}
	if opts.ResourceID != "" {
		add("resource_id =", opts.ResourceID)
	}
	if opts.Since != nil {
		add("created_at >=", *opts.Since)
	}
	if opts.Until != nil {
		add("created_at <=", *opts.Until)
	}

	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	return where, args, argIdx
}

// QueryAudit returns audit entries matching the given filters, newest first.
// Returns entries, hasMore flag, and any error.
func (s *AuditStore) QueryAudit(
	ctx context.Context, opts models.AuditQueryOpts,
) ([]models.AuditEntry, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where, args, argIdx := buildAuditFilter(opts)

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(
		"SELECT id, actor_uid, actor_email, actor_role, action, resource_type, resource_id, detail, created_at"+
			" FROM admin_audit_log %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		where, argIdx, argIdx+1,
	)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0, limit+1)

	for rows.Next() {
		var (
			e          models.AuditEntry
			detailJSON []byte
		)

		if err := rows.Scan(
			&e.ID, &e.ActorUID, &e.ActorEmail, &e.ActorRole,
			&e.Action, &e.ResourceType, &e.ResourceID, &detailJSON, &e.CreatedAt,
		); err != nil {
			return nil, false, fmt.Errorf("scanning audit entry: %w", err)
		}

		if detailJSON != nil {
			if err := json.Unmarshal(detailJSON, &e.Detail); err != nil {
				s.Log.WithError(err).Warn("failed to unmarshal audit detail")
			}
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating audit rows: %w", err)
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	return entries, hasMore, nil
}
