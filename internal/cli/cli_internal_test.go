package cli

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/config"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		status         StepStatus
		nonInteractive bool
		want           string
	}{
		{StepSuccess, true, "[OK]"},
		{StepWarning, true, "[WARN]"},
		{StepSkipped, true, "[SKIP]"},
		{StepError, true, "[ERR]"},
		{StepSuccess, false, "✓"},
		{StepError, false, "✗"},
		{StepStatus(99), false, "?"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatStatus(tt.status, tt.nonInteractive))
	}
}

func TestHealthURLFor(t *testing.T) {
	got, err := healthURLFor("http://127.0.0.1:8787/v1/coach?x=1")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8787/healthz", got)

	_, err = healthURLFor("not a url")
	require.Error(t, err)
}

func TestStepCheckCoach(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		res := stepCheckCoach(context.Background(), config.CoachConfig{Enabled: false})
		assert.Equal(t, StepSkipped, res.Status)
	})

	t.Run("healthy proxy", func(t *testing.T) {
		srv := httptest.NewServer(newServeMux(http.NotFoundHandler()))
		t.Cleanup(srv.Close)

		res := stepCheckCoach(context.Background(), config.CoachConfig{Enabled: true, ProxyURL: srv.URL + "/v1/coach"})
		assert.Equal(t, StepSuccess, res.Status, res.Message)
	})

	t.Run("unreachable proxy warns", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		res := stepCheckCoach(context.Background(), config.CoachConfig{Enabled: true, ProxyURL: "http://" + addr + "/v1/coach"})
		assert.Equal(t, StepWarning, res.Status)
		assert.False(t, res.Critical)
	})
}

func TestServeMux(t *testing.T) {
	proxy := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := httptest.NewServer(newServeMux(proxy))
	t.Cleanup(srv.Close)

	get := func(path string) (int, string) {
		resp, err := http.Get(srv.URL + path) //nolint:noctx // Test helper.
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	code, body := get("/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)

	code, body = get("/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "go_goroutines")

	code, _ = get("/v1/coach")
	assert.Equal(t, http.StatusTeapot, code)
}

func TestServeProxyShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveProxy(ctx, ln, newServeMux(http.NotFoundHandler()), config.Default().Server)
	}()

	require.Eventually(t, func() bool {
		resp, getErr := http.Get("http://" + ln.Addr().String() + "/healthz") //nolint:noctx // Test probe.
		if getErr != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestConfirmOverwrite(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"\n", false},
		{"no\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out strings.Builder
		got := ConfirmOverwrite(&out, strings.NewReader(tt.input), "backup.json")
		assert.Equal(t, tt.want, got.Accepted, "input %q", tt.input)
		assert.Contains(t, out.String(), "backup.json already exists")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("closed") }

func TestConfirmOverwriteReadError(t *testing.T) {
	got := ConfirmOverwrite(io.Discard, failingReader{}, "x")
	assert.True(t, got.Cancelled)
	assert.False(t, got.Accepted)
}

func TestReadImportLines(t *testing.T) {
	lines, err := readImportLines(strings.NewReader(
		"# header\n2026-06-01 drove 5km\n\n2026-06-02: vegan lunch\n2026-13-40 bus 3km\nbike 2km\n"))
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, importLine{number: 2, date: "2026-06-01", text: "drove 5km"}, lines[0])
	assert.Equal(t, importLine{number: 4, date: "2026-06-02", text: "vegan lunch"}, lines[1])
	assert.Equal(t, importLine{number: 5, text: "2026-13-40 bus 3km"}, lines[2], "invalid date stays in the text")
	assert.Equal(t, importLine{number: 6, text: "bike 2km"}, lines[3])
}
