package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/voltms/voltconsole/internal/identity"
	"github.com/voltms/voltconsole/internal/session"
)

func postJSON(srv *Server, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestLogin_AdminLandsOnAdminRoute(t *testing.T) {
	gw := &fakeGateway{token: "tok", profile: &identity.Profile{Name: "Op", IsSuperAdmin: true}}
	ctrl := session.NewController(gw, session.NewMemStore(), zerolog.Nop())
	ctrl.Rehydrate(context.Background())
	srv := newTestServer(ctrl)

	w := postJSON(srv, "/api/login", LoginRequest{Username: "u", Password: "p"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.IsAdmin)
	require.Equal(t, "/admin", resp.Landing)
}

func TestLogin_RegularUserLandsOnDashboard(t *testing.T) {
	gw := &fakeGateway{token: "tok", profile: &identity.Profile{Name: "Op", IsSuperAdmin: false}}
	ctrl := session.NewController(gw, session.NewMemStore(), zerolog.Nop())
	ctrl.Rehydrate(context.Background())
	srv := newTestServer(ctrl)

	w := postJSON(srv, "/api/login", LoginRequest{Username: "u", Password: "p"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.IsAdmin)
	require.Equal(t, "/dashboard", resp.Landing)
}

func TestLogin_BadCredentialsShowRemoteMessage(t *testing.T) {
	gw := &fakeGateway{authErr: &identity.AuthError{Status: 403, Message: "Invalid credentials"}}
	ctrl := session.NewController(gw, session.NewMemStore(), zerolog.Nop())
	ctrl.Rehydrate(context.Background())
	srv := newTestServer(ctrl)

	w := postJSON(srv, "/api/login", LoginRequest{Username: "u", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLogin_MissingFieldsRejected(t *testing.T) {
	srv := newTestServer(anonymousController())

	w := postJSON(srv, "/api/login", map[string]string{"username": "u"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_ClearsSession(t *testing.T) {
	ctrl := authenticatedController(true)
	srv := newTestServer(ctrl)

	w := postJSON(srv, "/api/logout", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	snap := ctrl.Snapshot()
	require.Equal(t, session.StateAnonymous, snap.State)

	// Admin routes are gone after logout
	w2 := doRequest(srv, http.MethodGet, "/admin")
	require.Equal(t, http.StatusSeeOther, w2.Code)
}

func TestSessionInfo_ReportsState(t *testing.T) {
	srv := newTestServer(authenticatedController(true))

	w := doRequest(srv, http.MethodGet, "/api/session")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "admin", resp.State)
	require.True(t, resp.IsAdmin)
	require.False(t, resp.Loading)
	require.NotNil(t, resp.Profile)
}
