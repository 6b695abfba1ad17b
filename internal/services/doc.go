// Package services talks to the Spotter backend over HTTP.
//
// # API Client
//
// [APIService] owns the base URL and the [http.Client]. Every request carries
// "Content-Type: application/json" and a fresh X-Request-ID. Failures are reported as:
//   - [*APIError] : the server answered with a non-2xx status
//   - [*ConnectError] : the server could not be reached; matches [shared.ErrCannotConnect]
//   - [shared.ErrAPIRequest] : the request could not be built or the response could not be decoded
//
// Requests can be paced with [WithRateLimit], which uses a token bucket from golang.org/x/time/rate.
//
// # Spotter Endpoints
//
// [SpotterService] wraps [APIService] with one typed method per backend endpoint. Paths are
// relative to the base URL (default http://localhost:5001/api).
//
// Authentication is not handled here: the auth package supplies an [http.Client] whose transport
// adds the bearer token.
package services
