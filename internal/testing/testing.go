// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper returns a canned response or error and records every request it sees.
type MockRoundTripper struct {
	response *http.Response
	err      error

	mu       sync.Mutex
	requests []*http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.response, m.err
}

// Requests returns the requests seen so far.
func (m *MockRoundTripper) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// MemoryStore is an in-memory key/value store standing in for the sqlite session repository.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string

	// Err, when set, is returned by every operation.
	Err error
}

func NewMemoryStore(kv ...string) *MemoryStore {
	s := &MemoryStore{values: make(map[string]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		s.values[kv[i]] = kv[i+1]
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.values[key], nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

// Has reports whether key is present.
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// Route is a canned response for a fake backend, keyed by "METHOD /path".
type Route struct {
	Status int
	Body   any
}

// NewBackend starts an httptest server answering from routes and counting hits per route.
//
// Unknown routes answer 404 with {"error":"not found"}. String bodies are written verbatim.
func NewBackend(t *testing.T, routes map[string]Route) (*httptest.Server, *Hits) {
	t.Helper()
	hits := &Hits{counts: make(map[string]int)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		hits.add(key, r)

		route, ok := routes[key]
		if !ok {
			route = Route{Status: http.StatusNotFound, Body: map[string]string{"error": "not found"}}
		}
		if route.Status == 0 {
			route.Status = http.StatusOK
		}

		if s, ok := route.Body.(string); ok {
			w.WriteHeader(route.Status)
			io.WriteString(w, s)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(route.Status)
		json.NewEncoder(w).Encode(route.Body)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

// Hits records which routes a fake backend served.
type Hits struct {
	mu     sync.Mutex
	counts map[string]int
	last   map[string]*http.Request
	bodies map[string][]byte
	order  []string
}

func (h *Hits) add(key string, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		h.last = make(map[string]*http.Request)
		h.bodies = make(map[string][]byte)
	}
	body, _ := io.ReadAll(r.Body)
	h.counts[key]++
	h.last[key] = r
	h.bodies[key] = body
	h.order = append(h.order, r.Method+" "+r.URL.RequestURI())
}

// Count returns how many times "METHOD /path" was requested.
func (h *Hits) Count(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[key]
}

// Total returns the number of requests served.
func (h *Hits) Total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.order)
}

// Order returns "METHOD /path?query" for each request in arrival order.
func (h *Hits) Order() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.order...)
}

// Last returns the most recent request for "METHOD /path".
func (h *Hits) Last(key string) *http.Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last[key]
}

// LastJSON decodes the most recent request body for "METHOD /path" into v.
func (h *Hits) LastJSON(t *testing.T, key string, v any) {
	t.Helper()
	h.mu.Lock()
	body := h.bodies[key]
	h.mu.Unlock()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("failed to decode body of %s: %v (%q)", key, err, body)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
