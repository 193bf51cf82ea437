// Package store provides focused, single-concern data access stores for the
// folio-admin console.
//
// Each store owns one domain (settings, users, audit) and embeds shared
// helpers (Pool, logger) via the Base struct. Stores never import each other.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/folioreads/folio-admin/internal/dbpool"
	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/rbac"

	"github.com/sirupsen/logrus"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// HashToken returns the hex SHA-256 of an admin API token.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// GetActorByToken resolves an admin API token to the acting administrator.
// The account's raw role string is normalized here, at the boundary; a token
// whose account normalizes to no administrative role is rejected outright.
func (b *Base) GetActorByToken(ctx context.Context, token string) (*models.Actor, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var (
		actor   models.Actor
		rawRole *string
	)

	err := b.Pool.QueryRow(ctx, `
		SELECT u.uid, u.email, u.role
		FROM admin_tokens t
		JOIN users u ON u.uid = t.uid
		WHERE t.token_hash = $1 AND u.status = 'active'`,
		HashToken(token),
	).Scan(&actor.UID, &actor.Email, &rawRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("unknown admin token")
		}

		return nil, fmt.Errorf("looking up admin token: %w", err)
	}

	raw := ""
	if rawRole != nil {
		raw = *rawRole
	}

	role, ok := rbac.Normalize(raw)
	if !ok {
		return nil, fmt.Errorf("account %s has no administrative role", actor.UID)
	}
	actor.Role = role

	return &actor, nil
}
