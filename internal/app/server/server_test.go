package server

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/codegen"
	"github.com/atinyakov/shortlink-registry/internal/metrics"
	"github.com/atinyakov/shortlink-registry/internal/models"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := storage.CreateMemoryStorage()
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())
	registry := service.NewRegistry(store, codegen.New(), m, zap.NewNop())

	ts := httptest.NewServer(Init("http://localhost:8080", zap.NewNop(), registry, m, "127.0.0.0/8"))
	t.Cleanup(ts.Close)

	ts.Client().CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, contentType, body string, header map[string]string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodPost, "/shorten", "application/json", `{"url":"https://example.com/page"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var info models.URLInfo
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	code := strings.TrimPrefix(info.ShortURL, "http://localhost:8080/s/")
	require.Len(t, code, 6)

	resp, body = do(t, ts, http.MethodPost, "/api/shorten", "application/json", `{"url":"https://example.com/page"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"result":"`+info.ShortURL+`"}`, body)

	resp, body = do(t, ts, http.MethodPost, "/", "text/plain", "https://example.com/page", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, info.ShortURL, body)

	resp, _ = do(t, ts, http.MethodGet, "/s/"+code, "", "", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "https://example.com/page", resp.Header.Get("Location"))

	resp, _ = do(t, ts, http.MethodGet, "/s/ZZZZZZ", "", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPost, "/shorten", "application/json", `{"url":"not a url"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodDelete, "/shorten", "", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodGet, "/nowhere/at/all", "", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, http.MethodPost, "/", "text/plain", "https://example.com/1", nil)
	do(t, ts, http.MethodPost, "/", "text/plain", "https://example.com/2", nil)
	do(t, ts, http.MethodPost, "/", "text/plain", "https://example.com/1", nil)

	resp, body := do(t, ts, http.MethodGet, "/api/internal/stats", "", "", map[string]string{"X-Real-IP": "127.0.0.1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"urls":2}`, body)

	resp, _ = do(t, ts, http.MethodGet, "/api/internal/stats", "", "", map[string]string{"X-Real-IP": "10.1.2.3"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPingWithMemoryStorage(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := do(t, ts, http.MethodGet, "/ping", "", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, http.MethodPost, "/", "text/plain", "https://example.com/1", nil)

	resp, body := do(t, ts, http.MethodGet, "/metrics", "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `shortener_shorten_total{result="created"} 1`)
	assert.Contains(t, body, `route="/"`)
}

func TestMetricsEndpoint_GzipOnce(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, http.MethodPost, "/", "text/plain", "https://example.com/1", nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	require.NoError(t, err)
	// An explicit Accept-Encoding turns off the transport's own decompression.
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	b, err := io.ReadAll(zr)
	require.NoError(t, err)

	assert.Contains(t, string(b), `shortener_shorten_total{result="created"} 1`)
}

func TestGzipRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(`{"url":"https://example.com/gz"}`))
	require.NoError(t, zw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/shorten", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	b, err := io.ReadAll(zr)
	require.NoError(t, err)

	var out models.Response
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, strings.HasPrefix(out.Result, "http://localhost:8080/s/"))
}
