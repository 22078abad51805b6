package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voltms/voltconsole/internal/identity"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Profile *identity.Profile `json:"profile"`
	IsAdmin bool              `json:"is_admin"`
	// Landing is where the UI should navigate next: admins go to the admin
	// home, everyone else to the dashboard.
	Landing string `json:"landing"`
}

// SessionResponse is the snapshot the UI polls to drive its navigation.
type SessionResponse struct {
	State   string            `json:"state"`
	IsAdmin bool              `json:"is_admin"`
	Loading bool              `json:"loading"`
	Profile *identity.Profile `json:"profile,omitempty"`
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := s.sessions.Login(c.Request.Context(), req.Username, req.Password, req.Remember)
	if err != nil {
		// A bad login fails loud: the remote diagnostic goes back to the
		// form for inline display.
		var authErr *identity.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
			return
		}
		s.logger.Error().Err(err).Msg("Login failed to persist session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	landing := "/dashboard"
	if profile.IsSuperAdmin {
		landing = adminRoute
	}

	c.JSON(http.StatusOK, LoginResponse{
		Profile: profile,
		IsAdmin: profile.IsSuperAdmin,
		Landing: landing,
	})
}

func (s *Server) logout(c *gin.Context) {
	s.sessions.Logout()
	c.Status(http.StatusNoContent)
}

func (s *Server) sessionInfo(c *gin.Context) {
	snap := s.sessions.Snapshot()
	c.JSON(http.StatusOK, SessionResponse{
		State:   snap.State.String(),
		IsAdmin: snap.IsAdmin,
		Loading: snap.Loading,
		Profile: snap.Profile,
	})
}

func (s *Server) loginView(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": "login"})
}

func (s *Server) dashboardView(c *gin.Context) {
	snap := s.sessions.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"view":    "dashboard",
		"profile": snap.Profile,
	})
}

func (s *Server) adminView(c *gin.Context) {
	snap := s.sessions.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"view":    "admin",
		"profile": snap.Profile,
	})
}
