package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcourses/internal/server/config"
	"github.com/dmitrijs2005/gophcourses/internal/server/shared/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.Storage = db.StorageMemory
	c.SecretKey = "app-test-secret"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	return c
}

func TestNewApp_MissingSecret(t *testing.T) {
	c := testConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token codec init error")
}

func TestNewApp_StoreError(t *testing.T) {
	orig := openStore
	openStore = func(context.Context, string, string) (db.RepositoryManager, error) {
		return nil, errors.New("unreachable")
	}
	t.Cleanup(func() { openStore = orig })

	_, err := NewApp(context.Background(), testConfig(), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error: unreachable")
}

func TestApp_HandlerServesMetrics(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), io.Discard)
	require.NoError(t, err)
	h := app.Handler()

	body := `{"email":"a@example.com","password":"pw","name":"A"}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gophcourses_registrations_total{outcome="success"} 1`)
	assert.Contains(t, w.Body.String(), `gophcourses_logins_total{outcome="success"} 1`)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), testConfig(), &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
