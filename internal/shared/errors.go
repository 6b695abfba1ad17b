package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionInvalid   = fmt.Errorf("session is no longer valid")

	// API and transport errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrCannotConnect      = fmt.Errorf("cannot connect to server")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrEmptyResult        = fmt.Errorf("empty result")

	// Input validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrSubmitInFlight  = fmt.Errorf("a submission is already in progress")
)
