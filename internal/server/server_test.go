package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	profile *tasks.Profile
	calls   int
	userIDs []string
}

func (f *fakeSource) Load(_ context.Context, userID string) *tasks.Profile {
	f.calls++
	f.userIDs = append(f.userIDs, userID)
	p := *f.profile
	p.UserID = userID
	return &p
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestMuxRouter(t *testing.T) {
	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewMuxRouter()
		r.Use(mark("first"), mark("second"))
		r.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
		assert.Equal(t, []string{"first", "second", "handler"}, order)
	})

	t.Run("Method Filtering", func(t *testing.T) {
		r := NewMuxRouter()
		r.Handle(http.MethodPost, "/submit", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/submit", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		r := NewMuxRouter()
		r.NotFound(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "nope")
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("Logging Records Status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf)

		h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Contains(t, buf.String(), "path=/brew")
		assert.Contains(t, buf.String(), "status=418")
	})

	t.Run("Recover", func(t *testing.T) {
		h := Recover(quietLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestProfileHandler(t *testing.T) {
	loaded := &tasks.Profile{
		Server:     &models.DebugResponse{Status: "ok", TotalWorkouts: 1},
		Workouts:   tasks.Section[models.Workout]{Items: []models.Workout{{ID: "1", Description: "<script>x</script>"}}},
		Challenges: tasks.Section[models.Challenge]{Err: errors.New("not found")},
	}

	newRouter := func(src ProfileSource) *MuxRouter {
		r := NewMuxRouter()
		r.Use(Recover(quietLogger()), Logging(quietLogger()))
		r.Handler(NewProfileHandler(src, "default_user", quietLogger()))
		return r
	}

	t.Run("HTML Page", func(t *testing.T) {
		src := &fakeSource{profile: loaded}
		rec := httptest.NewRecorder()
		newRouter(src).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "&lt;script&gt;x&lt;/script&gt;")
		assert.NotContains(t, body, "<script>")
		assert.Contains(t, body, "Error loading challenges: not found.")
		assert.Equal(t, []string{"default_user"}, src.userIDs)
	})

	t.Run("Reloads Per Request", func(t *testing.T) {
		src := &fakeSource{profile: loaded}
		r := newRouter(src)
		for _, path := range []string{"/", "/profile"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
		assert.Equal(t, 2, src.calls)
	})

	t.Run("JSON", func(t *testing.T) {
		src := &fakeSource{profile: loaded}
		rec := httptest.NewRecorder()
		newRouter(src).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile.json", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body struct {
			UserID          string           `json:"user_id"`
			Workouts        []models.Workout `json:"workouts"`
			Challenges      []any            `json:"challenges"`
			ChallengesError string           `json:"challenges_error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "default_user", body.UserID)
		assert.Len(t, body.Workouts, 1)
		assert.NotNil(t, body.Challenges)
		assert.Empty(t, body.Challenges)
		assert.Equal(t, "not found", body.ChallengesError)
	})

	t.Run("Offline Page", func(t *testing.T) {
		src := &fakeSource{profile: &tasks.Profile{Offline: true, ProbeErr: errors.New("refused")}}
		rec := httptest.NewRecorder()
		newRouter(src).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), formatter.OfflineWorkouts)
	})

	t.Run("Post Not Allowed", func(t *testing.T) {
		src := &fakeSource{profile: loaded}
		rec := httptest.NewRecorder()
		newRouter(src).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Zero(t, src.calls)
	})
}

func TestServe(t *testing.T) {
	t.Run("Stops When Context Is Done", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		ln.Close()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
		go func() { done <- Serve(ctx, addr, handler, quietLogger(), nil) }()

		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + addr)
			if err != nil {
				return false
			}
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			return strings.TrimSpace(string(b)) == "ok"
		}, 2*time.Second, 20*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(ShutdownTimeout + time.Second):
			t.Fatal("Serve did not return after cancel")
		}
	})

	t.Run("Listen Error", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		err = Serve(context.Background(), ln.Addr().String(), http.NotFoundHandler(), quietLogger(), nil)
		assert.Error(t, err)
	})
}
