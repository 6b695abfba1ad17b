package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/shared"
	tu "github.com/desertthunder/spotter/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct{ redirects int }

func (n *recordingNavigator) RedirectToLogin() { n.redirects++ }

func newTestGateway(t *testing.T, routes map[string]tu.Route, kv ...string) (*Gateway, *tu.MemoryStore, *recordingNavigator, *tu.Hits) {
	t.Helper()
	srv, hits := tu.NewBackend(t, routes)
	store := tu.NewMemoryStore(kv...)
	nav := &recordingNavigator{}
	g := NewGateway(store, GatewayOpts{BaseURL: srv.URL + "/api", Navigator: nav})
	return g, store, nav, hits
}

func TestGatewayAccessors(t *testing.T) {
	ctx := context.Background()

	t.Run("Absent", func(t *testing.T) {
		g, _, _, _ := newTestGateway(t, nil)
		assert.Empty(t, g.Token(ctx))
		assert.Empty(t, g.Email(ctx))
		assert.False(t, g.Session(ctx).Active())
	})

	t.Run("Present", func(t *testing.T) {
		g, _, _, hits := newTestGateway(t, nil, TokenKey, "tok", EmailKey, "a@bu.edu")
		assert.Equal(t, "tok", g.Token(ctx))
		assert.Equal(t, "a@bu.edu", g.Email(ctx))
		assert.Zero(t, hits.Total(), "accessors must not hit the network")
	})

	t.Run("Store Failure Reads As Absent", func(t *testing.T) {
		g, store, _, _ := newTestGateway(t, nil, TokenKey, "tok")
		store.Err = errors.New("disk gone")
		assert.Empty(t, g.Token(ctx))
	})
}

func TestRequireAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("No Token Redirects Without Network", func(t *testing.T) {
		g, _, nav, hits := newTestGateway(t, nil)

		ok, err := g.RequireAuth(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
		assert.Equal(t, 1, nav.redirects)
		assert.Zero(t, hits.Total())
	})

	t.Run("Valid Token", func(t *testing.T) {
		g, store, nav, hits := newTestGateway(t, map[string]tu.Route{
			"GET /api/verify": {Body: map[string]any{"valid": true, "email": "a@bu.edu"}},
		}, TokenKey, "tok", EmailKey, "a@bu.edu")

		ok, err := g.RequireAuth(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, nav.redirects)
		assert.True(t, store.Has(TokenKey))
		assert.Equal(t, "Bearer tok", hits.Last("GET /api/verify").Header.Get("Authorization"))
	})

	t.Run("Rejected Token Clears Session", func(t *testing.T) {
		g, store, nav, _ := newTestGateway(t, map[string]tu.Route{
			"GET /api/verify": {Status: http.StatusUnauthorized, Body: map[string]string{"error": "Invalid token"}},
		}, TokenKey, "tok", EmailKey, "a@bu.edu")

		ok, err := g.RequireAuth(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, shared.ErrSessionInvalid)
		assert.Equal(t, 1, nav.redirects)
		assert.False(t, store.Has(TokenKey))
		assert.False(t, store.Has(EmailKey))
	})

	t.Run("Network Failure Keeps Session", func(t *testing.T) {
		store := tu.NewMemoryStore(TokenKey, "tok", EmailKey, "a@bu.edu")
		nav := &recordingNavigator{}
		g := NewGateway(store, GatewayOpts{
			BaseURL:   "http://localhost:5001/api",
			Navigator: nav,
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
		})

		ok, err := g.RequireAuth(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, shared.ErrCannotConnect)
		assert.Zero(t, nav.redirects)
		assert.True(t, store.Has(TokenKey))
		assert.True(t, store.Has(EmailKey))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Notifies Server And Clears", func(t *testing.T) {
		g, store, nav, hits := newTestGateway(t, map[string]tu.Route{
			"POST /api/logout": {Body: map[string]any{"success": true}},
		}, TokenKey, "tok", EmailKey, "a@bu.edu")

		g.Logout(ctx)

		assert.Equal(t, 1, hits.Count("POST /api/logout"))
		assert.Equal(t, "Bearer tok", hits.Last("POST /api/logout").Header.Get("Authorization"))
		assert.False(t, store.Has(TokenKey))
		assert.False(t, store.Has(EmailKey))
		assert.Equal(t, 1, nav.redirects)
	})

	t.Run("Server Failure Still Clears", func(t *testing.T) {
		g, store, nav, _ := newTestGateway(t, map[string]tu.Route{
			"POST /api/logout": {Status: http.StatusInternalServerError, Body: "boom"},
		}, TokenKey, "tok", EmailKey, "a@bu.edu")

		g.Logout(ctx)

		assert.False(t, store.Has(TokenKey))
		assert.Equal(t, 1, nav.redirects)
	})

	t.Run("No Token Skips Server", func(t *testing.T) {
		g, _, nav, hits := newTestGateway(t, nil, EmailKey, "a@bu.edu")

		g.Logout(ctx)

		assert.Zero(t, hits.Total())
		assert.Equal(t, 1, nav.redirects)
	})
}

func TestAuthFetch(t *testing.T) {
	t.Run("Adds Bearer When Token Present", func(t *testing.T) {
		g, _, _, hits := newTestGateway(t, map[string]tu.Route{"GET /api/workouts": {Body: map[string]any{}}}, TokenKey, "tok")

		req, _ := http.NewRequest(http.MethodGet, g.Spotter().API().BaseURL()+"/workouts", nil)
		req.Header.Set("X-Extra", "kept")
		resp, err := g.AuthFetch(req)
		require.NoError(t, err)
		resp.Body.Close()

		last := hits.Last("GET /api/workouts")
		assert.Equal(t, "Bearer tok", last.Header.Get("Authorization"))
		assert.Equal(t, "kept", last.Header.Get("X-Extra"))
		assert.Empty(t, req.Header.Get("Authorization"), "caller's request must not be mutated")
	})

	t.Run("Pass Through Without Token", func(t *testing.T) {
		g, _, _, hits := newTestGateway(t, map[string]tu.Route{"GET /api/workouts": {Body: map[string]any{}}})

		req, _ := http.NewRequest(http.MethodGet, g.Spotter().API().BaseURL()+"/workouts", nil)
		resp, err := g.AuthFetch(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Empty(t, hits.Last("GET /api/workouts").Header.Get("Authorization"))
	})

	t.Run("Token Read At Request Time", func(t *testing.T) {
		g, store, _, hits := newTestGateway(t, map[string]tu.Route{"GET /api/debug": {Body: map[string]any{}}})
		client := g.Client()

		require.NoError(t, store.Set(context.Background(), TokenKey, "later"))
		resp, err := client.Get(g.Spotter().API().BaseURL() + "/debug")
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "Bearer later", hits.Last("GET /api/debug").Header.Get("Authorization"))
	})
}

func TestLoginAndRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Login Stores Session", func(t *testing.T) {
		g, _, _, hits := newTestGateway(t, map[string]tu.Route{
			"POST /api/login": {Body: models.AuthResponse{Success: true, Token: "new-tok", Email: "a@bu.edu"}},
		})

		session, err := g.Login(ctx, " A@BU.edu ", "secret")
		require.NoError(t, err)
		assert.Equal(t, "new-tok", session.Token)
		assert.Equal(t, "new-tok", g.Token(ctx))
		assert.Equal(t, "a@bu.edu", g.Email(ctx))

		var body models.Credentials
		hits.LastJSON(t, "POST /api/login", &body)
		assert.Equal(t, "a@bu.edu", body.Email)
	})

	t.Run("Register Falls Back To Given Email", func(t *testing.T) {
		g, _, _, _ := newTestGateway(t, map[string]tu.Route{
			"POST /api/register": {Status: http.StatusCreated, Body: models.AuthResponse{Success: true, Token: "t"}},
		})

		_, err := g.Register(ctx, "new@bu.edu", "secret")
		require.NoError(t, err)
		assert.Equal(t, "new@bu.edu", g.Email(ctx))
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		g, _, _, hits := newTestGateway(t, nil)

		_, err := g.Login(ctx, "", "secret")
		assert.ErrorIs(t, err, shared.ErrMissingArgument)
		assert.Zero(t, hits.Total())
	})

	t.Run("Rejected Credentials", func(t *testing.T) {
		g, _, _, _ := newTestGateway(t, map[string]tu.Route{
			"POST /api/login": {Status: http.StatusUnauthorized, Body: map[string]any{"success": false, "error": "Invalid email or password."}},
		})

		_, err := g.Login(ctx, "a@bu.edu", "wrong")
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password.", err.Error())
		assert.Empty(t, g.Token(ctx))
	})

	t.Run("Success Without Token", func(t *testing.T) {
		g, _, _, _ := newTestGateway(t, map[string]tu.Route{
			"POST /api/login": {Body: models.AuthResponse{Success: false, Message: "pending"}},
		})

		_, err := g.Login(ctx, "a@bu.edu", "pw")
		assert.ErrorIs(t, err, shared.ErrAuthFailed)
	})
}

func TestAdopt(t *testing.T) {
	ctx := context.Background()
	g, store, _, _ := newTestGateway(t, nil, EmailKey, "stale@bu.edu")

	require.NoError(t, g.Adopt(ctx, models.AuthSession{Token: "copied"}))
	assert.Equal(t, "copied", g.Token(ctx))
	assert.False(t, store.Has(EmailKey), "stale email should be dropped")

	assert.ErrorIs(t, g.Adopt(ctx, models.AuthSession{}), shared.ErrMissingArgument)
}
