package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/folioreads/folio-admin/internal/metrics"
	"github.com/folioreads/folio-admin/internal/models"
)

// maxListLimit caps page sizes for setting and history listings.
const maxListLimit = 500

// SettingStore owns the versioned admin_settings table and its append-only
// setting_history ledger. The document write and the history append always
// happen in one transaction, so history can never drift from the document's
// real trajectory.
type SettingStore struct {
	Base
}

// NewSettingStore creates a SettingStore.
func NewSettingStore(base Base) *SettingStore {
	return &SettingStore{Base: base}
}

const settingColumns = "key, value, value_type, category, editable, sensitive, version, updated_at, updated_by"

func scanSetting(row pgx.Row) (*models.Setting, error) {
	var s models.Setting
	if err := row.Scan(
		&s.Key, &s.Value, &s.ValueType, &s.Category,
		&s.Editable, &s.Sensitive, &s.Version, &s.UpdatedAt, &s.UpdatedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSettingNotFound
		}

		return nil, fmt.Errorf("scanning setting: %w", err)
	}

	return &s, nil
}

// GetSetting returns a single setting by key.
func (s *SettingStore) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		"SELECT "+settingColumns+" FROM admin_settings WHERE key = $1", key)

	return scanSetting(row)
}

// ListSettings returns settings, optionally filtered by category, ordered by
// key. Returns settings, hasMore flag, and any error.
func (s *SettingStore) ListSettings(
	ctx context.Context, category string, limit, offset int,
) ([]models.Setting, bool, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := "SELECT " + settingColumns + " FROM admin_settings"
	args := []any{}
	argIdx := 1

	if category != "" {
		query += fmt.Sprintf(" WHERE category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY key LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	settings := make([]models.Setting, 0, limit+1)

	for rows.Next() {
		var st models.Setting
		if err := rows.Scan(
			&st.Key, &st.Value, &st.ValueType, &st.Category,
			&st.Editable, &st.Sensitive, &st.Version, &st.UpdatedAt, &st.UpdatedBy,
		); err != nil {
			return nil, false, fmt.Errorf("scanning setting row: %w", err)
		}
		settings = append(settings, st)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating setting rows: %w", err)
	}

	hasMore := len(settings) > limit
	if hasMore {
		settings = settings[:limit]
	}

	return settings, hasMore, nil
}

// UpdateSetting applies a new value to a setting under optimistic concurrency.
//
// The current row's version is the CAS token: the UPDATE is conditional on it,
// and a mismatch (either against req.ExpectedVersion or against a concurrent
// writer) fails with models.ErrVersionConflict and writes nothing. On success
// the new version is exactly oldVersion+1 and one history row is appended in
// the same transaction.
func (s *SettingStore) UpdateSetting(
	ctx context.Context, actor models.Actor, key string, req models.UpdateSettingRequest,
) (*models.SettingChange, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning setting update: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	cur, err := scanSetting(tx.QueryRow(ctx,
		"SELECT "+settingColumns+" FROM admin_settings WHERE key = $1", key))
	if err != nil {
		return nil, err
	}

	if !cur.Editable {
		return nil, models.ErrSettingNotEditable
	}

	if req.ExpectedVersion > 0 && req.ExpectedVersion != cur.Version {
		metrics.SettingConflictsTotal.Inc()

		return nil, models.ErrVersionConflict
	}

	before := models.Snapshot{Value: cur.Value, ValueType: cur.ValueType}
	after := models.Snapshot{Value: req.Value, ValueType: req.ValueType}

	change, err := s.writeSetting(ctx, tx, cur, after, writeSettingParams{
		action:   models.ChangeActionUpdate,
		actorUID: actor.UID,
		before:   before,
		reason:   req.Reason,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing setting update: %w", err)
	}

	return change, nil
}

// RollbackSetting restores a setting to the after-snapshot of a prior history
// entry. Rollback is additive: it appends a new version and a new history row
// and never rewrites the entries between the target and the present.
func (s *SettingStore) RollbackSetting(
	ctx context.Context, actor models.Actor, key string, req models.RollbackSettingRequest,
) (*models.SettingChange, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning setting rollback: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	var target models.Snapshot

	err = tx.QueryRow(ctx,
		"SELECT after_value, after_type FROM setting_history WHERE id = $1 AND setting_key = $2",
		req.ChangeID, key,
	).Scan(&target.Value, &target.ValueType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrChangeNotFound
		}

		return nil, fmt.Errorf("loading rollback target: %w", err)
	}

	cur, err := scanSetting(tx.QueryRow(ctx,
		"SELECT "+settingColumns+" FROM admin_settings WHERE key = $1", key))
	if err != nil {
		return nil, err
	}

	if !cur.Editable {
		return nil, models.ErrSettingNotEditable
	}

	before := models.Snapshot{Value: cur.Value, ValueType: cur.ValueType}

	change, err := s.writeSetting(ctx, tx, cur, target, writeSettingParams{
		action:   models.ChangeActionRollback,
		actorUID: actor.UID,
		before:   before,
		reason:   req.Reason,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing setting rollback: %w", err)
	}

	return change, nil
}

// writeSettingParams carries the per-write metadata for writeSetting.
type writeSettingParams struct {
	action   models.ChangeAction
	actorUID string
	before   models.Snapshot
	reason   string
}

// writeSetting performs the conditional document update and the history
// append within the caller's transaction.
func (s *SettingStore) writeSetting(
	ctx context.Context, tx pgx.Tx, cur *models.Setting, after models.Snapshot, p writeSettingParams,
) (*models.SettingChange, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE admin_settings
		SET value = $1, value_type = $2, version = version + 1, updated_at = NOW(), updated_by = $3
		WHERE key = $4 AND version = $5`,
		after.Value, string(after.ValueType), p.actorUID, cur.Key, cur.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("updating setting: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// A concurrent writer advanced the version between our read and the
		// conditional update.
		metrics.SettingConflictsTotal.Inc()

		return nil, models.ErrVersionConflict
	}

	var reasonPtr *string
	if p.reason != "" {
		reasonPtr = &p.reason
	}

	change := models.SettingChange{
		SettingKey:   cur.Key,
		Action:       p.action,
		ActorUID:     p.actorUID,
		VersionAfter: cur.Version + 1,
		Before:       p.before,
		After:        after,
		Reason:       reasonPtr,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO setting_history
			(setting_key, action, actor_uid, version_after, before_value, before_type, after_value, after_type, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, changed_at`,
		change.SettingKey, string(change.Action), change.ActorUID, change.VersionAfter,
		change.Before.Value, string(change.Before.ValueType),
		change.After.Value, string(change.After.ValueType),
		reasonPtr,
	).Scan(&change.ID, &change.ChangedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting setting history: %w", err)
	}

	return &change, nil
}

// ListSettingHistory returns the change ledger for a setting, newest first,
// with has_more pagination.
func (s *SettingStore) ListSettingHistory(
	ctx context.Context, key string, limit, offset int,
) ([]models.SettingChange, bool, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `
		SELECT id, setting_key, action, actor_uid, version_after,
		       before_value, before_type, after_value, after_type, reason, changed_at
		FROM setting_history
		WHERE setting_key = $1
		ORDER BY changed_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		key, limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("querying setting history: %w", err)
	}
	defer rows.Close()

	changes := make([]models.SettingChange, 0, limit+1)

	for rows.Next() {
		var c models.SettingChange
		if err := rows.Scan(
			&c.ID, &c.SettingKey, &c.Action, &c.ActorUID, &c.VersionAfter,
			&c.Before.Value, &c.Before.ValueType,
			&c.After.Value, &c.After.ValueType,
			&c.Reason, &c.ChangedAt,
		); err != nil {
			return nil, false, fmt.Errorf("scanning setting history row: %w", err)
		}
		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating setting history rows: %w", err)
	}

	hasMore := len(changes) > limit
	if hasMore {
		changes = changes[:limit]
	}

	return changes, hasMore, nil
}
