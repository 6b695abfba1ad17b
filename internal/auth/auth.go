package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/services"
	"github.com/desertthunder/spotter/internal/shared"
)

// Local storage keys holding the session.
const (
	TokenKey = "spotterToken"
	EmailKey = "spotterEmail"
)

// Store is the local key/value storage backing the session. Missing keys read as "".
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Navigator sends the user to the login page.
type Navigator interface {
	RedirectToLogin()
}

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func()

func (f NavigatorFunc) RedirectToLogin() { f() }

// GatewayOpts configures a [Gateway]. Zero values fall back to defaults.
type GatewayOpts struct {
	BaseURL           string
	Navigator         Navigator
	Logger            *log.Logger
	Transport         http.RoundTripper
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Gateway owns the session: token and email accessors, verification, logout and authenticated requests.
type Gateway struct {
	store   Store
	nav     Navigator
	logger  *log.Logger
	client  *http.Client
	spotter *services.SpotterService
}

// NewGateway creates a gateway over store. All backend calls it makes, and all calls made through
// [Gateway.Spotter], use the bearer-injecting client.
func NewGateway(store Store, opts GatewayOpts) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	nav := opts.Navigator
	if nav == nil {
		nav = NavigatorFunc(func() {})
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	g := &Gateway{store: store, nav: nav, logger: logger}
	g.client = &http.Client{
		Transport: &bearerTransport{store: store, base: base, logger: logger},
		Timeout:   opts.Timeout,
	}

	api := services.NewAPIService(opts.BaseURL, g.client,
		services.WithLogger(logger),
		services.WithRateLimit(opts.RequestsPerSecond),
	)
	g.spotter = services.NewSpotterService(api)
	return g
}

// Token returns the stored session token, or "" when signed out.
func (g *Gateway) Token(ctx context.Context) string {
	return g.read(ctx, TokenKey)
}

// Email returns the stored account email, or "" when signed out.
func (g *Gateway) Email(ctx context.Context) string {
	return g.read(ctx, EmailKey)
}

// Session returns both stored values.
func (g *Gateway) Session(ctx context.Context) models.AuthSession {
	return models.AuthSession{Token: g.Token(ctx), Email: g.Email(ctx)}
}

func (g *Gateway) read(ctx context.Context, key string) string {
	value, err := g.store.Get(ctx, key)
	if err != nil {
		g.logger.Warn("failed to read local storage", "key", key, "error", err)
		return ""
	}
	return value
}

// RequireAuth reports whether a verified session exists.
//
// Without a token it redirects to login and returns [shared.ErrNotAuthenticated] without any network call.
// When the backend rejects the token the session is cleared, the user is redirected and
// [shared.ErrSessionInvalid] is returned. A network failure returns false with the error and leaves
// the session in place.
func (g *Gateway) RequireAuth(ctx context.Context) (bool, error) {
	if g.Token(ctx) == "" {
		g.nav.RedirectToLogin()
		return false, shared.ErrNotAuthenticated
	}

	if _, err := g.spotter.Verify(ctx); err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) {
			g.clear(ctx)
			g.nav.RedirectToLogin()
			return false, fmt.Errorf("%w: %s", shared.ErrSessionInvalid, apiErr.Message)
		}
		g.logger.Error("auth check failed", "error", err)
		return false, err
	}

	return true, nil
}

// Logout ends the session. The server is told on a best-effort basis; local state is always
// cleared and the user is redirected to login.
func (g *Gateway) Logout(ctx context.Context) {
	if g.Token(ctx) != "" {
		if err := g.spotter.Logout(ctx); err != nil {
			g.logger.Warn("logout request failed", "error", err)
		}
	}
	g.clear(ctx)
	g.nav.RedirectToLogin()
}

func (g *Gateway) clear(ctx context.Context) {
	if err := g.store.Delete(ctx, TokenKey, EmailKey); err != nil {
		g.logger.Error("failed to clear session", "error", err)
	}
}

// Client returns the HTTP client that injects the bearer token.
func (g *Gateway) Client() *http.Client { return g.client }

// AuthFetch sends req with the bearer token attached when one is stored.
func (g *Gateway) AuthFetch(req *http.Request) (*http.Response, error) {
	return g.client.Do(req)
}

// Spotter returns the typed backend client bound to this gateway's session.
func (g *Gateway) Spotter() *services.SpotterService { return g.spotter }

// Login signs in and stores the returned session.
func (g *Gateway) Login(ctx context.Context, email, password string) (*models.AuthSession, error) {
	creds, err := credentials(email, password)
	if err != nil {
		return nil, err
	}
	resp, err := g.spotter.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return g.adoptResponse(ctx, creds.Email, resp)
}

// Register creates an account and stores the returned session.
func (g *Gateway) Register(ctx context.Context, email, password string) (*models.AuthSession, error) {
	creds, err := credentials(email, password)
	if err != nil {
		return nil, err
	}
	resp, err := g.spotter.Register(ctx, creds)
	if err != nil {
		return nil, err
	}
	return g.adoptResponse(ctx, creds.Email, resp)
}

// Adopt stores a session obtained elsewhere, such as a token copied from the browser.
func (g *Gateway) Adopt(ctx context.Context, session models.AuthSession) error {
	if session.Token == "" {
		return fmt.Errorf("%w: token is empty", shared.ErrMissingArgument)
	}
	if err := g.store.Set(ctx, TokenKey, session.Token); err != nil {
		return err
	}
	if session.Email == "" {
		return g.store.Delete(ctx, EmailKey)
	}
	return g.store.Set(ctx, EmailKey, session.Email)
}

func (g *Gateway) adoptResponse(ctx context.Context, email string, resp *models.AuthResponse) (*models.AuthSession, error) {
	if !resp.Success || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "no token returned"
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthFailed, msg)
	}

	session := models.AuthSession{Token: resp.Token, Email: resp.Email}
	if session.Email == "" {
		session.Email = email
	}
	if err := g.Adopt(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &session, nil
}

func credentials(email, password string) (models.Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.Credentials{}, fmt.Errorf("%w: email and password are required", shared.ErrMissingArgument)
	}
	return models.Credentials{Email: email, Password: password}, nil
}
