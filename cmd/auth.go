package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in with email and password.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	r.logger.Info("signing in", "email", email)

	session, err := r.gateway.Login(ctx, email, cmd.String("password"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Signed in as %s\n", session.Email)
}

// AuthRegister creates an account and signs in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	r.logger.Info("registering", "email", email)

	session, err := r.gateway.Register(ctx, email, cmd.String("password"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Registered and signed in as %s\n", session.Email)
}

// AuthLogout ends the session. It always succeeds locally.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.gateway.Logout(ctx)
	return nil
}

type authStatus struct {
	SignedIn bool   `json:"signed_in"`
	Valid    bool   `json:"valid"`
	Email    string `json:"email,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AuthStatus verifies the stored session.
//
// An invalid session is cleared; a backend that cannot be reached leaves it in place.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	status := authStatus{SignedIn: r.gateway.Token(ctx) != "", Email: r.gateway.Email(ctx)}

	ok, err := r.gateway.RequireAuth(ctx)
	status.Valid = ok
	if err != nil {
		status.Error = err.Error()
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	r.writePlainHeader("Session")
	switch {
	case ok:
		r.writePlain("✓ Signed in as %s\n", status.Email)
	case !status.SignedIn:
		r.writePlain("✗ Not signed in\n")
	default:
		r.writePlain("✗ %s\n", status.Error)
	}
	return nil
}

// AuthImport stores the bearer token found in a browser "Copy as cURL" command.
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var curl *shared.CurlRequest
	var err error

	if curlFile != "" {
		curl, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		curl, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	token, err := curl.BearerToken()
	if err != nil {
		return err
	}

	session := models.AuthSession{Token: token, Email: cmd.String("email")}
	if err := r.gateway.Adopt(ctx, session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	r.logger.Debug("session imported", "url", curl.URL)
	r.writePlain("✓ Session imported\n")
	r.writePlain("Run 'spotter auth status' to verify it\n")
	return nil
}
