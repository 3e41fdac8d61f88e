// File: internal/session/manager_test.go
package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"converse_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCookieJar(t *testing.T) *cookiejar.Jar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return jar
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func testConfig() *config.Config {
	return &config.Config{
		GinMode:           "debug",
		SessionCookieName: "qid",
		SessionLifetime:   7 * 24 * time.Hour,
	}
}

func TestBindAndReadBack(t *testing.T) {
	m := NewManager(testConfig(), zap.NewNop())
	userID := uuid.New()

	var readBack uuid.UUID
	var found bool
	handler := m.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			m.Bind(r.Context(), userID)
		case "/me":
			readBack, found = m.UserID(r.Context())
		}
	}))

	srv := httptest.NewServer(handler)
	defer srv.Close()

	jar := newCookieJar(t)
	client := &http.Client{Jar: jar}

	resp, err := client.Get(srv.URL + "/login")
	require.NoError(t, err)
	resp.Body.Close()

	// Session cookie issued with the configured name.
	cookies := jar.Cookies(mustParseURL(t, srv.URL))
	require.Len(t, cookies, 1)
	assert.Equal(t, "qid", cookies[0].Name)

	resp, err = client.Get(srv.URL + "/me")
	require.NoError(t, err)
	resp.Body.Close()

	require.True(t, found)
	assert.Equal(t, userID, readBack)
}

func TestAnonymousSessionHasNoUser(t *testing.T) {
	m := NewManager(testConfig(), zap.NewNop())

	var found bool
	handler := m.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = m.UserID(r.Context())
	}))

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, found)
}

func TestDestroyForgetsBinding(t *testing.T) {
	m := NewManager(testConfig(), zap.NewNop())
	userID := uuid.New()

	var found bool
	handler := m.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			m.Bind(r.Context(), userID)
		case "/logout":
			m.Destroy(r.Context())
		case "/me":
			_, found = m.UserID(r.Context())
		}
	}))

	srv := httptest.NewServer(handler)
	defer srv.Close()

	client := &http.Client{Jar: newCookieJar(t)}
	for _, path := range []string{"/login", "/logout", "/me"} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.False(t, found)
}
