package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"
)

// UserStore provides data access for platform accounts.
type UserStore struct {
	Base
}

// NewUserStore creates a UserStore.
func NewUserStore(base Base) *UserStore {
	return &UserStore{Base: base}
}

const userColumns = "uid, email, display_name, status, role, user_type, author_status, created_at, updated_at, updated_by"

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u            models.User
		rawRole      *string
		userType     *string
		authorStatus *string
	)

	if err := row.Scan(
		&u.UID, &u.Email, &u.DisplayName, &u.Status,
		&rawRole, &userType, &authorStatus,
		&u.CreatedAt, &u.UpdatedAt, &u.UpdatedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}

		return nil, fmt.Errorf("scanning user: %w", err)
	}

	if rawRole != nil {
		u.RawRole = *rawRole
	}
	if userType != nil {
		u.UserType = models.UserType(*userType)
	}
	if authorStatus != nil {
		u.AuthorStatus = models.AuthorStatus(*authorStatus)
	}

	// Read-time normalization only; the stored row is never backfilled.
	u.Normalize()

	return &u, nil
}

// GetUser returns a single user by uid.
func (s *UserStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return scanUser(s.Pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE uid = $1", uid))
}

// UpdateUserStatus sets the account standing, stamping the acting admin.
func (s *UserStore) UpdateUserStatus(
	ctx context.Context, actor models.Actor, uid string, status models.UserStatus,
) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return scanUser(s.Pool.QueryRow(ctx, `
		UPDATE users
		SET status = $2, updated_at = NOW(), updated_by = $3
		WHERE uid = $1
		RETURNING `+userColumns,
		uid, string(status), actor.UID))
}

// SetAdminRole grants a canonical admin role. Granting a role always
// classifies the account as an admin.
func (s *UserStore) SetAdminRole(
	ctx context.Context, actor models.Actor, uid string, role rbac.Role,
) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return scanUser(s.Pool.QueryRow(ctx, `
		UPDATE users
		SET role = $2, user_type = 'admin', updated_at = NOW(), updated_by = $3
		WHERE uid = $1
		RETURNING `+userColumns,
		uid, string(role), actor.UID))
}

// ClearAdminRole revokes any admin role. The account reverts to a reader.
func (s *UserStore) ClearAdminRole(
	ctx context.Context, actor models.Actor, uid string,
) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return scanUser(s.Pool.QueryRow(ctx, `
		UPDATE users
		SET role = NULL, user_type = 'reader', updated_at = NOW(), updated_by = $2
		WHERE uid = $1
		RETURNING `+userColumns,
		uid, actor.UID))
}

// UpdateAuthorStatus moves an account through the author-approval workflow.
func (s *UserStore) UpdateAuthorStatus(
	ctx context.Context, actor models.Actor, uid string, status models.AuthorStatus,
) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return scanUser(s.Pool.QueryRow(ctx, `
		UPDATE users
		SET author_status = $2, updated_at = NOW(), updated_by = $3
		WHERE uid = $1
		RETURNING `+userColumns,
		uid, string(status), actor.UID))
}
