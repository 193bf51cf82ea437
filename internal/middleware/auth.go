package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/models"
	"github.com/folioreads/folio-admin/internal/security"
)

// authTimingFloor is the minimum response time for failed authentication to
// prevent timing oracles that could distinguish valid from invalid tokens.
const authTimingFloor = 50 * time.Millisecond

// ActorKey is the gin context key holding the authenticated models.Actor.
const ActorKey = "actor"

// ActorLookup resolves an admin token to the acting administrator.
type ActorLookup interface {
	GetActorByToken(ctx context.Context, token string) (*models.Actor, error)
}

// truncateToken returns at most the first 4 characters of tok followed by "...".
func truncateToken(tok string) string {
	if len(tok) > 4 {
		return tok[:4] + "..."
	}
	return tok
}

// enforceTimingFloor sleeps if needed so the response takes at least authTimingFloor.
func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// AuthMiddleware returns Gin middleware that authenticates requests via a
// Bearer admin token. If a BruteForceGuard is provided, failed attempts are
// tracked per token hash and locked-out tokens are rejected up front.
func AuthMiddleware(lookup ActorLookup, log *logrus.Logger, guards ...*security.BruteForceGuard) gin.HandlerFunc {
	var guard *security.BruteForceGuard
	if len(guards) > 0 {
		guard = guards[0]
	}

	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				enforceTimingFloor(start)
			}
		}()

		token := ExtractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		if guard != nil && guard.IsBlocked(token) {
			respondError(c, http.StatusTooManyRequests, "locked_out", "too many failed authentication attempts")
			return
		}

		actor, err := lookup.GetActorByToken(c.Request.Context(), token)
		if err != nil {
			logAuthFailure(log, c, token)

			if guard != nil {
				guard.RecordFailure(token)
			}

			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid admin token")
			return
		}

		if guard != nil {
			guard.ResetToken(token)
		}

		c.Set(ActorKey, *actor)
		c.Next()
	}
}

// ExtractBearerToken extracts the admin token from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// logAuthFailure logs a failed authentication attempt.
func logAuthFailure(log *logrus.Logger, c *gin.Context, token string) {
	log.WithFields(logrus.Fields{
		"client_ip":    c.ClientIP(),
		"method":       c.Request.Method,
		"path":         c.Request.URL.Path,
		"user_agent":   c.Request.UserAgent(),
		"request_id":   c.GetString("request_id"),
		"token_prefix": truncateToken(token),
	}).Warn("authentication failed: invalid admin token")
}
