package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/voltms/voltconsole/internal/identity"
)

// State classifies the session. The machine starts Unknown and cycles between
// Anonymous and the two authenticated states for the life of the process.
type State int

const (
	// StateUnknown means startup rehydration has not finished yet.
	StateUnknown State = iota
	// StateAnonymous means no token is held.
	StateAnonymous
	// StateUser means a token is held and the profile is not a super admin.
	StateUser
	// StateAdmin means a token is held and the profile is a super admin.
	StateAdmin
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateUser:
		return "user"
	case StateAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session at a point in time.
type Snapshot struct {
	State   State
	Token   string
	Profile *identity.Profile
	IsAdmin bool
	// Loading is true only while startup rehydration is in flight. Guards
	// must treat it as "decision pending", never as "denied".
	Loading bool
}

// Gateway is the slice of the identity client the controller needs.
type Gateway interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	FetchProfile(ctx context.Context, token string) (*identity.Profile, error)
}

// Controller owns the single session of a running console instance. It is
// constructed explicitly and injected where needed; there is no ambient
// singleton. Safe for concurrent use.
type Controller struct {
	gateway Gateway
	store   Store
	log     zerolog.Logger

	mu      sync.Mutex
	state   State
	token   string
	profile *identity.Profile
	isAdmin bool
	loading bool

	rehydrateOnce sync.Once
}

// NewController creates a controller in the Unknown state. Call Rehydrate
// before serving traffic; until then Loading is true.
func NewController(gateway Gateway, store Store, log zerolog.Logger) *Controller {
	return &Controller{
		gateway: gateway,
		store:   store,
		log:     log,
		state:   StateUnknown,
		loading: true,
	}
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:   c.state,
		Token:   c.token,
		Profile: c.profile,
		IsAdmin: c.isAdmin,
		Loading: c.loading,
	}
}

// Rehydrate restores the session from durable storage, verifying any
// persisted token against the identity API. It runs at most once; later
// calls are no-ops. There is no cancellation: an abandoned rehydration
// finishes on its own and its result stands. Failures are swallowed and
// converted into a silent logout, so a broken session fails safe and
// invisible. Loading flips to false exactly once, at the end, on every path.
func (c *Controller) Rehydrate(ctx context.Context) {
	c.rehydrateOnce.Do(func() { c.rehydrate(ctx) })
}

func (c *Controller) rehydrate(ctx context.Context) {
	token, err := c.store.LoadToken()
	if err != nil {
		if !errors.Is(err, ErrNotStored) {
			c.log.Warn().Err(err).Msg("Failed to read persisted token")
		}
		c.mu.Lock()
		c.state = StateAnonymous
		c.loading = false
		c.mu.Unlock()
		return
	}

	// Adopt the persisted values optimistically before verification so the
	// public gate can redirect a returning user without waiting.
	storedIsAdmin, err := c.store.LoadIsAdmin()
	if err != nil && !errors.Is(err, ErrNotStored) {
		c.log.Warn().Err(err).Msg("Failed to read persisted role flag")
	}
	c.mu.Lock()
	c.token = token
	c.isAdmin = storedIsAdmin
	c.mu.Unlock()

	profile, err := c.gateway.FetchProfile(ctx, token)
	if err != nil {
		c.log.Info().Err(err).Msg("Session rehydration failed, logging out")
		c.mu.Lock()
		c.clearLocked()
		c.loading = false
		c.mu.Unlock()
		return
	}

	// Reconcile the persisted role flag with the freshly fetched one.
	if profile.IsSuperAdmin != storedIsAdmin {
		if err := c.store.SaveIsAdmin(profile.IsSuperAdmin); err != nil {
			c.log.Warn().Err(err).Msg("Failed to persist reconciled role flag")
		}
	}

	c.mu.Lock()
	c.profile = profile
	c.isAdmin = profile.IsSuperAdmin
	c.state = stateFor(profile.IsSuperAdmin)
	c.loading = false
	c.mu.Unlock()

	c.log.Info().Bool("is_admin", profile.IsSuperAdmin).Msg("Session rehydrated")
}

// Login exchanges credentials for a token, classifies the caller's role, and
// persists both. It is all-or-nothing: if the profile fetch fails after the
// credential exchange succeeded, nothing is persisted and the session stays
// anonymous. AuthError from the gateway propagates verbatim.
func (c *Controller) Login(ctx context.Context, username, password string, remember bool) (*identity.Profile, error) {
	token, err := c.gateway.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	profile, err := c.gateway.FetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	// Persist token and role together so storage never holds a token
	// without a role decision.
	if err := c.store.SaveToken(token); err != nil {
		return nil, fmt.Errorf("failed to save authentication token: %w", err)
	}
	if err := c.store.SaveIsAdmin(profile.IsSuperAdmin); err != nil {
		// Roll the token back rather than leave an orphaned token behind.
		if delErr := c.store.DeleteToken(); delErr != nil {
			c.log.Warn().Err(delErr).Msg("Failed to roll back token")
		}
		return nil, fmt.Errorf("failed to save role flag: %w", err)
	}

	if remember {
		creds := Credentials{Username: username, Password: password}
		if err := c.store.SaveCredentials(creds); err != nil {
			c.log.Warn().Err(err).Msg("Failed to remember credentials")
		}
	}

	c.mu.Lock()
	c.token = token
	c.profile = profile
	c.isAdmin = profile.IsSuperAdmin
	c.state = stateFor(profile.IsSuperAdmin)
	c.mu.Unlock()

	c.log.Info().Str("user", profile.Slug).Bool("is_admin", profile.IsSuperAdmin).Msg("User logged in")
	return profile, nil
}

// Logout clears the persisted and in-memory session. It is idempotent, has
// no network effect, and never fails from the caller's point of view.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateAnonymous {
		return
	}
	c.clearLocked()
	c.log.Info().Msg("User logged out")
}

// clearLocked wipes durable and in-memory session state. Callers hold c.mu.
func (c *Controller) clearLocked() {
	if err := c.store.DeleteToken(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to delete persisted token")
	}
	if err := c.store.DeleteIsAdmin(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to delete persisted role flag")
	}
	c.token = ""
	c.profile = nil
	c.isAdmin = false
	c.state = StateAnonymous
}

func stateFor(isAdmin bool) State {
	if isAdmin {
		return StateAdmin
	}
	return StateUser
}
