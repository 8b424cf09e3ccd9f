//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/testhelper"
	"github.com/adityakarchi/recipe-management/internal/app"
	"github.com/adityakarchi/recipe-management/internal/config"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

const indexHTML = "<!doctype html><title>Recipes</title>"

// setupTestServer bootstraps the full application handler backed by a real
// PostgreSQL container (shared via testhelper) and a temporary client bundle.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(indexHTML), 0o644))

	cfg := &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 1 << 20},
		Recipe: config.RecipeConfig{MaxIngredients: 200, MaxSteps: 200},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type,X-Request-Id",
			MaxAge:         86400,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Static:    config.StaticConfig{Dir: staticDir, Index: "index.html"},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	srv := httptest.NewServer(app.NewHandler(cfg, logger, pool))
	t.Cleanup(func() { srv.Close() })

	client := srv.Client()
	client.Timeout = 10 * time.Second

	return &testServer{
		URL:    srv.URL,
		Client: client,
		Pool:   pool,
	}
}

// do sends a request with an optional JSON body and returns the status code
// and raw response body.
func (ts *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// doJSON is like do but decodes the response into a generic map.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	status, raw := ts.do(t, method, path, body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return status, out
}

// createRecipe posts a recipe and returns its id.
func (ts *testServer) createRecipe(t *testing.T, body map[string]any) int64 {
	t.Helper()

	status, out := ts.doJSON(t, http.MethodPost, "/api/recipes", body)
	require.Equal(t, http.StatusCreated, status, "create failed: %v", out)

	id, ok := out["id"].(float64)
	require.True(t, ok, "expected numeric id in %v", out)
	return int64(id)
}

func recipePath(id int64) string {
	return "/api/recipes/" + strconv.FormatInt(id, 10)
}
