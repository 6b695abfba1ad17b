package auth

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

type tokenReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// bearerTransport adds the stored token to outgoing requests and passes them through untouched
// when no token is stored.
type bearerTransport struct {
	store  tokenReader
	base   http.RoundTripper
	logger *log.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.store.Get(req.Context(), TokenKey)
	if err != nil {
		t.logger.Warn("failed to read session token", "error", err)
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}

	inner := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   t.base,
	}
	return inner.RoundTrip(req)
}
