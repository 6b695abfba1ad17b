// Utilities for reading a session out of a browser "Copy as cURL" command.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	curlHeaderRegex = regexp.MustCompile(`(?:-H|--header)\s+'([^']+)'|(?:-H|--header)\s+"([^"]+)"`)
	curlURLRegex    = regexp.MustCompile(`https?://[^'"\s]+`)
)

// CurlRequest holds the parts of a cURL command needed to reuse a backend session.
type CurlRequest struct {
	URL     string
	Headers map[string]string
}

// ParseCurlFile reads a file containing a cURL command and parses it with [ParseCurlCommand].
func ParseCurlFile(path string) (*CurlRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}
	return ParseCurlCommand(content)
}

// ParseCurlCommand extracts the target URL and headers from a cURL command.
//
// Header names are canonicalized to lower case. Line continuations are joined first.
func ParseCurlCommand(data []byte) (*CurlRequest, error) {
	cmd := strings.ReplaceAll(string(data), "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\", "")

	req := &CurlRequest{Headers: make(map[string]string)}

	for _, match := range curlHeaderRegex.FindAllStringSubmatch(cmd, -1) {
		line := match[1]
		if line == "" {
			line = match[2]
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		req.Headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	// Origin and Referer headers carry URLs too, so look only outside the headers.
	req.URL = curlURLRegex.FindString(curlHeaderRegex.ReplaceAllString(cmd, ""))

	if len(req.Headers) == 0 {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}
	return req, nil
}

// BearerToken returns the token of a "Bearer" authorization header.
func (c *CurlRequest) BearerToken() (string, error) {
	auth, ok := c.Headers["authorization"]
	if !ok {
		return "", fmt.Errorf("%w: no authorization header in curl command", ErrInvalidInput)
	}
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: authorization header is not a bearer token", ErrInvalidInput)
	}
	return strings.TrimSpace(token), nil
}
