// File: internal/app/server_test.go
package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"converse_backend/internal/config"
	"converse_backend/internal/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		GinMode:           "test",
		ServerHost:        "127.0.0.1",
		ServerPort:        "0",
		CORSOrigin:        "http://localhost:3000",
		SessionCookieName: "qid",
		SessionLifetime:   7 * 24 * time.Hour,
	}
	logger := zap.NewNop()
	sessions := session.NewManager(cfg, logger)

	graphqlHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	})

	server, err := NewServer(cfg, logger, sessions, graphqlHandler, prometheus.NewRegistry())
	require.NoError(t, err)
	return server
}

func TestPingRoute(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "it worked!")
}

func TestMetricsRoute(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGraphQLRouteCarriesSession(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{}}`, rec.Body.String())
}
