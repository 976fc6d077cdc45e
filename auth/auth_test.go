package auth_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shajib07/storefront/auth"
	apperrors "github.com/shajib07/storefront/common/errors"
	"github.com/shajib07/storefront/config"
	"github.com/shajib07/storefront/store"
)

// --- Mocks for Dependencies ---

type MockGateway struct{ mock.Mock }

func (m *MockGateway) Request(ctx context.Context, method, path string, body any, requiresAuth bool) (json.RawMessage, error) {
	args := m.Called(ctx, method, path, body, requiresAuth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func testConfig() config.Config {
	return config.Config{TokenKey: "auth.token", RefreshTokenKey: "auth.refresh"}
}

// drain closes the reducer so every queued event has been applied, then
// returns the final state.
func drain(r *auth.Reducer) auth.State {
	r.Close()
	return r.Snapshot()
}

// --- Tests ---

func TestCheckStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("No Persisted Token", func(t *testing.T) {
		r := auth.New(new(MockGateway), store.NewMemoryStore(), testConfig())
		r.CheckStatus(ctx)

		state := drain(r)
		assert.Equal(t, auth.StatusUnauthenticated, state.Status)
	})

	t.Run("Persisted Token", func(t *testing.T) {
		tokens := store.NewMemoryStore()
		require.NoError(t, tokens.Set(ctx, "auth.token", "restored"))

		r := auth.New(new(MockGateway), tokens, testConfig())
		r.CheckStatus(ctx)

		state := drain(r)
		assert.Equal(t, auth.StatusAuthenticated, state.Status)
	})
}

func TestLoginThenLogout(t *testing.T) {
	ctx := context.Background()
	tokens := store.NewMemoryStore()
	gw := new(MockGateway)
	creds := auth.Credentials{Email: "demo@storefront.dev", Password: "demo1234"}

	gw.On("Request", mock.Anything, "POST", "/auth/login", creds, false).
		Return(json.RawMessage(`{"access_token":"abc","refresh_token":"def"}`), nil).Once()

	r := auth.New(gw, tokens, testConfig())

	var statuses []auth.Status
	cancel := r.Subscribe(func(s auth.State) { statuses = append(statuses, s.Status) })
	defer cancel()

	r.Login(ctx, creds)
	r.Logout(ctx)

	state := drain(r)
	assert.Equal(t, auth.StatusUnauthenticated, state.Status)
	assert.Equal(t, []auth.Status{auth.StatusAuthenticated, auth.StatusUnauthenticated}, statuses)

	// logout removed the persisted pair
	access, _ := tokens.Get(ctx, "auth.token")
	refresh, _ := tokens.Get(ctx, "auth.refresh")
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	gw.AssertExpectations(t)
}

func TestLogin_PersistsTokenPair(t *testing.T) {
	ctx := context.Background()
	tokens := store.NewMemoryStore()
	gw := new(MockGateway)
	gw.On("Request", mock.Anything, "POST", "/auth/login", mock.Anything, false).
		Return(json.RawMessage(`{"access_token":"abc","refresh_token":"def"}`), nil).Once()

	r := auth.New(gw, tokens, testConfig())
	r.Login(ctx, auth.Credentials{Email: "demo@storefront.dev", Password: "demo1234"})

	state := drain(r)
	assert.Equal(t, auth.StatusAuthenticated, state.Status)

	access, _ := tokens.Get(ctx, "auth.token")
	refresh, _ := tokens.Get(ctx, "auth.refresh")
	assert.Equal(t, "abc", access)
	assert.Equal(t, "def", refresh)
}

func TestLogin_FailureKeepsUnauthenticated(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	gw.On("Request", mock.Anything, "POST", "/auth/login", mock.Anything, false).
		Return(nil, apperrors.Unauthorized("invalid email or password", nil)).Once()

	r := auth.New(gw, store.NewMemoryStore(), testConfig())
	r.Login(ctx, auth.Credentials{Email: "demo@storefront.dev", Password: "wrong"})

	state := drain(r)
	assert.Equal(t, auth.StatusUnauthenticated, state.Status)
	assert.Contains(t, state.Err, "invalid email or password")
}

func TestLogin_MalformedResponse(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	gw.On("Request", mock.Anything, "POST", "/auth/login", mock.Anything, false).
		Return(json.RawMessage(`{"nope":1}`), nil).Once()

	r := auth.New(gw, store.NewMemoryStore(), testConfig())
	r.Login(ctx, auth.Credentials{Email: "demo@storefront.dev", Password: "demo1234"})

	state := drain(r)
	assert.Equal(t, auth.StatusUnauthenticated, state.Status)
	assert.Equal(t, "malformed login response", state.Err)
}

func TestSessionExpired(t *testing.T) {
	ctx := context.Background()
	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.Set(ctx, "auth.token", "abc"))

	r := auth.New(new(MockGateway), tokens, testConfig())
	r.CheckStatus(ctx)
	r.SessionExpired()

	state := drain(r)
	assert.Equal(t, auth.StatusUnauthenticated, state.Status)
	assert.Equal(t, "session expired", state.Err)
}
