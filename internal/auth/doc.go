// Package auth keeps the client's session and gates protected commands on it.
//
// The session is two entries in local storage, [TokenKey] and [EmailKey]. [Gateway] reads them
// on demand, verifies the token against the backend in [Gateway.RequireAuth], and clears them on
// [Gateway.Logout] or when the backend rejects the token.
//
// Every request made through [Gateway.Client] (and so through [Gateway.Spotter]) carries
// "Authorization: Bearer <token>" when a token is stored. The token is read when the request is
// sent, so a login or logout takes effect for clients created earlier.
//
// Redirecting to the login page is delegated to a [Navigator]; the CLI prints a login hint.
package auth
