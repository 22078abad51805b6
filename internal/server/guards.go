package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/voltms/voltconsole/internal/session"
)

const (
	entryRoute = "/"
	adminRoute = "/admin"
)

// RequireAdmin gates admin routes. While rehydration is pending it serves a
// retryable placeholder instead of deciding; once resolved it redirects
// anonymous and non-admin callers to the entry route. Redirects are silent,
// never error pages.
func RequireAdmin(sessions *session.Controller, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := sessions.Snapshot()

		if snap.Loading {
			sessionPending(c)
			return
		}

		if snap.Token == "" {
			redirect(c, log, entryRoute, "no token")
			return
		}

		if !snap.IsAdmin {
			redirect(c, log, entryRoute, "not admin")
			return
		}

		c.Next()
	}
}

// RequireAuth gates routes that need any authenticated user, admin or not.
func RequireAuth(sessions *session.Controller, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := sessions.Snapshot()

		if snap.Loading {
			sessionPending(c)
			return
		}

		if snap.Token == "" {
			redirect(c, log, entryRoute, "no token")
			return
		}

		c.Next()
	}
}

// PublicOnly gates the login view. It checks only whether a token is known
// and does not wait on loading, so a returning user with a cached token is
// sent to the admin landing route before profile verification completes.
func PublicOnly(sessions *session.Controller, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := sessions.Snapshot()

		if snap.Token != "" {
			redirect(c, log, adminRoute, "already authenticated")
			return
		}

		c.Next()
	}
}

// sessionPending is the console's loading placeholder: the decision is
// pending, not denied.
func sessionPending(c *gin.Context) {
	c.Header("Retry-After", "1")
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "session pending"})
	c.Abort()
}

func redirect(c *gin.Context, log zerolog.Logger, target, reason string) {
	log.Debug().
		Str("path", c.Request.URL.Path).
		Str("target", target).
		Str("reason", reason).
		Msg("Guard redirect")
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}
