package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voltms/voltconsole/internal/identity"
)

// mockGateway is an in-memory identity API for controller tests.
type mockGateway struct {
	authToken string
	authErr   error
	profile   *identity.Profile
	fetchErr  error

	authCalls  int
	fetchCalls int

	// When set, FetchProfile signals fetchStarted and blocks until
	// fetchRelease is closed. Used to observe mid-rehydration state.
	fetchStarted chan struct{}
	fetchRelease chan struct{}
}

func (m *mockGateway) Authenticate(ctx context.Context, username, password string) (string, error) {
	m.authCalls++
	if m.authErr != nil {
		return "", m.authErr
	}
	return m.authToken, nil
}

func (m *mockGateway) FetchProfile(ctx context.Context, token string) (*identity.Profile, error) {
	m.fetchCalls++
	if m.fetchStarted != nil {
		m.fetchStarted <- struct{}{}
		<-m.fetchRelease
	}
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.profile, nil
}

func newTestController(gw *mockGateway, store Store) *Controller {
	return NewController(gw, store, zerolog.Nop())
}

func TestRehydrate_EmptyStorage(t *testing.T) {
	store := NewMemStore()
	gw := &mockGateway{}
	ctrl := newTestController(gw, store)

	if snap := ctrl.Snapshot(); !snap.Loading {
		t.Fatal("expected loading before rehydration")
	}

	ctrl.Rehydrate(context.Background())

	snap := ctrl.Snapshot()
	if snap.State != StateAnonymous {
		t.Errorf("expected anonymous state, got %s", snap.State)
	}
	if snap.Loading {
		t.Error("expected loading to end false")
	}
	if snap.Token != "" || snap.IsAdmin || snap.Profile != nil {
		t.Error("expected empty session")
	}
	if gw.fetchCalls != 0 {
		t.Errorf("expected no profile fetch, got %d", gw.fetchCalls)
	}
}

func TestRehydrate_ReconcilesStaleRoleFlag(t *testing.T) {
	store := NewMemStore()
	store.SaveToken("abc")
	store.SaveIsAdmin(false) // stale: the fetched profile says admin

	gw := &mockGateway{profile: &identity.Profile{ID: 1, Name: "Root", IsSuperAdmin: true}}
	ctrl := newTestController(gw, store)
	ctrl.Rehydrate(context.Background())

	snap := ctrl.Snapshot()
	if snap.State != StateAdmin {
		t.Errorf("expected admin state, got %s", snap.State)
	}
	if !snap.IsAdmin {
		t.Error("expected isAdmin to follow the fetched profile")
	}
	if snap.Loading {
		t.Error("expected loading to end false")
	}

	stored, err := store.LoadIsAdmin()
	if err != nil {
		t.Fatalf("expected persisted role flag: %v", err)
	}
	if !stored {
		t.Error("expected persisted role flag rewritten to true")
	}
}

func TestRehydrate_RejectedTokenClearsEverything(t *testing.T) {
	store := NewMemStore()
	store.SaveToken("expired")
	store.SaveIsAdmin(true)

	gw := &mockGateway{fetchErr: &identity.AuthError{Status: 401, Message: "Expired token"}}
	ctrl := newTestController(gw, store)
	ctrl.Rehydrate(context.Background())

	snap := ctrl.Snapshot()
	if snap.State != StateAnonymous {
		t.Errorf("expected anonymous state, got %s", snap.State)
	}
	if snap.Token != "" || snap.IsAdmin || snap.Profile != nil {
		t.Error("expected fully cleared session")
	}
	if snap.Loading {
		t.Error("expected loading to end false")
	}

	if _, err := store.LoadToken(); !errors.Is(err, ErrNotStored) {
		t.Error("expected persisted token removed")
	}
	if _, err := store.LoadIsAdmin(); !errors.Is(err, ErrNotStored) {
		t.Error("expected persisted role flag removed")
	}
}

func TestRehydrate_TransportFailureClearsEverything(t *testing.T) {
	store := NewMemStore()
	store.SaveToken("abc")

	gw := &mockGateway{fetchErr: &identity.AuthError{Message: "could not reach the identity service"}}
	ctrl := newTestController(gw, store)
	ctrl.Rehydrate(context.Background())

	snap := ctrl.Snapshot()
	if snap.State != StateAnonymous || snap.Loading {
		t.Errorf("expected resolved anonymous state, got %s loading=%v", snap.State, snap.Loading)
	}
	if _, err := store.LoadToken(); !errors.Is(err, ErrNotStored) {
		t.Error("expected persisted token removed")
	}
}

func TestRehydrate_RunsAtMostOnce(t *testing.T) {
	store := NewMemStore()
	store.SaveToken("abc")

	gw := &mockGateway{profile: &identity.Profile{IsSuperAdmin: false}}
	ctrl := newTestController(gw, store)

	ctrl.Rehydrate(context.Background())
	ctrl.Rehydrate(context.Background())

	if gw.fetchCalls != 1 {
		t.Errorf("expected one profile fetch, got %d", gw.fetchCalls)
	}
}

func TestRehydrate_TokenVisibleWhileVerificationPending(t *testing.T) {
	store := NewMemStore()
	store.SaveToken("abc")
	store.SaveIsAdmin(true)

	gw := &mockGateway{
		profile:      &identity.Profile{IsSuperAdmin: true},
		fetchStarted: make(chan struct{}),
		fetchRelease: make(chan struct{}),
	}
	ctrl := newTestController(gw, store)

	done := make(chan struct{})
	go func() {
		ctrl.Rehydrate(context.Background())
		close(done)
	}()
	<-gw.fetchStarted

	// Mid-rehydration: the persisted token is adopted optimistically so the
	// public gate can redirect without waiting.
	snap := ctrl.Snapshot()
	if !snap.Loading {
		t.Error("expected loading while fetch is outstanding")
	}
	if snap.Token != "abc" {
		t.Errorf("expected optimistic token, got %q", snap.Token)
	}
	if !snap.IsAdmin {
		t.Error("expected optimistic role flag")
	}

	close(gw.fetchRelease)
	<-done

	if snap := ctrl.Snapshot(); snap.Loading || snap.State != StateAdmin {
		t.Errorf("expected resolved admin session, got %s loading=%v", snap.State, snap.Loading)
	}
}

func TestLogin_AdminAndUserClassification(t *testing.T) {
	tests := []struct {
		name      string
		isAdmin   bool
		wantState State
	}{
		{"admin profile", true, StateAdmin},
		{"regular profile", false, StateUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemStore()
			gw := &mockGateway{authToken: "xyz", profile: &identity.Profile{IsSuperAdmin: tt.isAdmin}}
			ctrl := newTestController(gw, store)
			ctrl.Rehydrate(context.Background())

			profile, err := ctrl.Login(context.Background(), "u", "p", false)
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if profile.IsSuperAdmin != tt.isAdmin {
				t.Error("unexpected profile classification")
			}

			snap := ctrl.Snapshot()
			if snap.State != tt.wantState {
				t.Errorf("expected %s, got %s", tt.wantState, snap.State)
			}
			if snap.Token != "xyz" {
				t.Errorf("expected token in session, got %q", snap.Token)
			}

			token, err := store.LoadToken()
			if err != nil || token != "xyz" {
				t.Errorf("expected persisted token, got %q (%v)", token, err)
			}
			stored, err := store.LoadIsAdmin()
			if err != nil || stored != tt.isAdmin {
				t.Errorf("expected persisted role flag %v, got %v (%v)", tt.isAdmin, stored, err)
			}
		})
	}
}

func TestLogin_BadCredentialsLeaveNoTrace(t *testing.T) {
	store := NewMemStore()
	gw := &mockGateway{authErr: &identity.AuthError{Status: 403, Code: "jwt_auth_failed", Message: "Invalid credentials"}}
	ctrl := newTestController(gw, store)
	ctrl.Rehydrate(context.Background())

	_, err := ctrl.Login(context.Background(), "u", "wrong", false)
	if err == nil {
		t.Fatal("expected login error")
	}

	// The remote diagnostic reaches the caller verbatim
	var authErr *identity.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Errorf("expected verbatim message, got %q", authErr.Message)
	}

	if snap := ctrl.Snapshot(); snap.State != StateAnonymous {
		t.Errorf("expected session to stay anonymous, got %s", snap.State)
	}
	if _, err := store.LoadToken(); !errors.Is(err, ErrNotStored) {
		t.Error("expected no storage write")
	}
	if _, err := store.LoadIsAdmin(); !errors.Is(err, ErrNotStored) {
		t.Error("expected no storage write")
	}
}

func TestLogin_ProfileFetchFailureRollsBack(t *testing.T) {
	store := NewMemStore()
	gw := &mockGateway{authToken: "xyz", fetchErr: &identity.AuthError{Status: 401, Message: "token rejected"}}
	ctrl := newTestController(gw, store)
	ctrl.Rehydrate(context.Background())

	_, err := ctrl.Login(context.Background(), "u", "p", false)
	if err == nil {
		t.Fatal("expected login error")
	}

	// All-or-nothing: no token may be persisted without a role decision.
	if _, err := store.LoadToken(); !errors.Is(err, ErrNotStored) {
		t.Error("expected token rolled back")
	}
	if _, err := store.LoadIsAdmin(); !errors.Is(err, ErrNotStored) {
		t.Error("expected no role flag persisted")
	}
	if snap := ctrl.Snapshot(); snap.State != StateAnonymous || snap.Token != "" {
		t.Error("expected session to stay anonymous")
	}
}

func TestLogin_RememberStoresCredentials(t *testing.T) {
	store := NewMemStore()
	gw := &mockGateway{authToken: "xyz", profile: &identity.Profile{}}
	ctrl := newTestController(gw, store)
	ctrl.Rehydrate(context.Background())

	if _, err := ctrl.Login(context.Background(), "u", "p", true); err != nil {
		t.Fatalf("login: %v", err)
	}

	creds, err := store.LoadCredentials()
	if err != nil {
		t.Fatalf("expected remembered credentials: %v", err)
	}
	if creds.Username != "u" || creds.Password != "p" {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestLoginThenLogout_RoundTripIdentity(t *testing.T) {
	store := NewMemStore()
	gw := &mockGateway{authToken: "xyz", profile: &identity.Profile{IsSuperAdmin: true}}
	ctrl := newTestController(gw, store)
	ctrl.Rehydrate(context.Background())

	before := ctrl.Snapshot()

	if _, err := ctrl.Login(context.Background(), "u", "p", false); err != nil {
		t.Fatalf("login: %v", err)
	}
	ctrl.Logout()

	after := ctrl.Snapshot()
	if after != before {
		t.Errorf("expected snapshot unchanged by login+logout: before=%+v after=%+v", before, after)
	}
	if _, err := store.LoadToken(); !errors.Is(err, ErrNotStored) {
		t.Error("expected storage token cleared")
	}
	if _, err := store.LoadIsAdmin(); !errors.Is(err, ErrNotStored) {
		t.Error("expected storage role flag cleared")
	}
}

func TestLogout_IdempotentWhenAnonymous(t *testing.T) {
	store := NewMemStore()
	ctrl := newTestController(&mockGateway{}, store)
	ctrl.Rehydrate(context.Background())

	ctrl.Logout()
	ctrl.Logout()

	if snap := ctrl.Snapshot(); snap.State != StateAnonymous || snap.Loading {
		t.Errorf("unexpected state after repeated logout: %+v", snap)
	}
}
