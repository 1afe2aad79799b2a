package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

func sampleSummary() engine.Summary {
	return engine.Summary{
		TotalKg:    12.6,
		AvgDailyKg: 6.3,
		Streak:     2,
		Breakdown: engine.Breakdown{
			TotalKg: 12.6,
			Shares: []engine.CategoryShare{
				{Category: greenops.CategoryTransport, Name: "Transport", CarbonKg: 10.5, Percent: 83.3},
				{Category: greenops.CategoryMeals, Name: "Meals", CarbonKg: 2.1, Percent: 16.7},
			},
		},
	}
}

func sampleRecent(n int) []ledger.Activity {
	out := make([]ledger.Activity, 0, n)
	for i := range n {
		d := float64(i + 1)
		out = append(out, ledger.Activity{
			ID:       string(rune('a' + i)),
			Category: greenops.CategoryTransport,
			Type:     "car",
			Distance: &d,
			Date:     "2026-06-10",
			CarbonKg: d * 0.21,
		})
	}
	return out
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("  How do I cut my commute emissions? ", sampleSummary(), sampleRecent(7))

	assert.Contains(t, p, "Total: 12.60 kg CO2")
	assert.Contains(t, p, "Daily average: 6.30 kg CO2")
	assert.Contains(t, p, "Current streak: 2 days")
	assert.Contains(t, p, "Transport 10.50 kg (83.3%)")
	assert.Equal(t, RecentActivityLimit, strings.Count(p, "transport car"))
	assert.True(t, strings.HasSuffix(p, "Question: How do I cut my commute emissions?"))
}

func TestBuildPrompt_EmptyLedger(t *testing.T) {
	p := BuildPrompt("hi", engine.Summary{Breakdown: engine.Breakdown{Empty: true}}, nil)
	assert.Contains(t, p, "no activities yet")
	assert.NotContains(t, p, "Recent activities")
}

func TestCoach_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("reply", func(t *testing.T) {
		var gotPrompt string
		c := New(CompleterFunc(func(_ context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return "  Take the train twice a week.  ", nil
		}), time.Second)

		r := c.Ask(ctx, "tips?", sampleSummary(), nil)
		assert.Equal(t, Reply{Text: "Take the train twice a week."}, r)
		assert.Contains(t, gotPrompt, "Question: tips?")
	})

	t.Run("error falls back", func(t *testing.T) {
		c := New(CompleterFunc(func(context.Context, string) (string, error) {
			return "", errors.New("connection refused")
		}), 0)
		assert.Equal(t, Reply{Text: FallbackMessage, Fallback: true}, c.Ask(ctx, "q", sampleSummary(), nil))
	})

	t.Run("blank reply falls back", func(t *testing.T) {
		c := New(CompleterFunc(func(context.Context, string) (string, error) {
			return "   ", nil
		}), 0)
		assert.True(t, c.Ask(ctx, "q", sampleSummary(), nil).Fallback)
	})

	t.Run("timeout falls back", func(t *testing.T) {
		c := New(CompleterFunc(func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}), 10*time.Millisecond)
		assert.True(t, c.Ask(ctx, "q", sampleSummary(), nil).Fallback)
	})

	t.Run("nil completer falls back", func(t *testing.T) {
		assert.True(t, New(nil, 0).Ask(ctx, "q", sampleSummary(), nil).Fallback)
	})
}

func TestProxyClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "client must not send credentials")
		var req coachRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Prompt {
		case "ok":
			_ = json.NewEncoder(w).Encode(coachResponse{Reply: "ride a bike"})
		case "blank":
			_ = json.NewEncoder(w).Encode(coachResponse{})
		default:
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(coachResponse{Error: &ErrorBody{Code: CodeUpstreamFailed, Message: "down"}})
		}
	}))
	defer srv.Close()

	c := NewProxyClient(srv.URL, time.Second)
	ctx := context.Background()

	reply, err := c.Complete(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, "ride a bike", reply)

	_, err = c.Complete(ctx, "blank")
	require.ErrorIs(t, err, ErrEmptyReply)

	_, err = c.Complete(ctx, "fail")
	var pe *ProxyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusBadGateway, pe.Status)
	assert.Equal(t, CodeUpstreamFailed, pe.Code)

	_, err = NewProxyClient("", time.Second).Complete(ctx, "ok")
	require.ErrorIs(t, err, ErrNoProxy)
}

func TestLoadAPIKey(t *testing.T) {
	none := func(string) (string, bool) { return "", false }

	_, err := LoadAPIKey(none, "")
	require.ErrorIs(t, err, ErrMissingAPIKey)

	key, err := LoadAPIKey(func(k string) (string, bool) {
		return "from-env", k == APIKeyEnv
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(APIKeyEnv+"=from-file\n"), 0o600))
	key, err = LoadAPIKey(none, envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file", key)

	_, err = LoadAPIKey(none, filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewProxyHandler_Validation(t *testing.T) {
	_, err := NewProxyHandler(ProxyConfig{UpstreamURL: "http://x", Model: "m"})
	require.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewProxyHandler(ProxyConfig{APIKey: "k", Model: "m"})
	require.Error(t, err)

	_, err = NewProxyHandler(ProxyConfig{APIKey: "k", UpstreamURL: "http://x"})
	require.Error(t, err)
}

func newUpstream(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, completionsPath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":` +
			strings.TrimSpace(mustJSON(t, content)) + `}}]}`))
	}))
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func doProxy(t *testing.T, h http.Handler, method, body string) (int, coachResponse) {
	t.Helper()
	req := httptest.NewRequest(method, "/v1/coach", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out coachResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec.Code, out
}

func TestProxyHandler(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, "Try a meatless Monday.")
	defer upstream.Close()

	h, err := NewProxyHandler(ProxyConfig{
		UpstreamURL: upstream.URL + "/",
		Model:       "test-model",
		APIKey:      "secret",
	})
	require.NoError(t, err)

	before := testutil.ToFloat64(proxyRequests.WithLabelValues("200"))
	code, out := doProxy(t, h, http.MethodPost, `{"prompt":"help"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Try a meatless Monday.", out.Reply)
	assert.Nil(t, out.Error)
	assert.InDelta(t, before+1, testutil.ToFloat64(proxyRequests.WithLabelValues("200")), 1e-9)

	tests := []struct {
		name   string
		method string
		body   string
		status int
		code   string
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, CodeMethodNotAllowed},
		{"bad json", http.MethodPost, "{", http.StatusBadRequest, CodeInvalidRequest},
		{"blank prompt", http.MethodPost, `{"prompt":"  "}`, http.StatusBadRequest, CodeInvalidRequest},
		{"too long", http.MethodPost, `{"prompt":"` + strings.Repeat("a", maxPromptRunes+1) + `"}`,
			http.StatusBadRequest, CodePromptTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := doProxy(t, h, tt.method, tt.body)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestProxyHandler_UpstreamFailures(t *testing.T) {
	t.Run("upstream error status", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusUnauthorized, "nope")
		defer upstream.Close()
		h, err := NewProxyHandler(ProxyConfig{UpstreamURL: upstream.URL, Model: "test-model", APIKey: "secret"})
		require.NoError(t, err)

		before := testutil.ToFloat64(upstreamFailures)
		status, resp := doProxy(t, h, http.MethodPost, `{"prompt":"help"}`)
		assert.Equal(t, http.StatusBadGateway, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, CodeUpstreamFailed, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "secret")
		assert.InDelta(t, before+1, testutil.ToFloat64(upstreamFailures), 1e-9)
	})

	t.Run("empty completion", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusOK, " ")
		defer upstream.Close()
		h, err := NewProxyHandler(ProxyConfig{UpstreamURL: upstream.URL, Model: "test-model", APIKey: "secret"})
		require.NoError(t, err)

		status, resp := doProxy(t, h, http.MethodPost, `{"prompt":"help"}`)
		assert.Equal(t, http.StatusBadGateway, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, CodeEmptyReply, resp.Error.Code)
	})
}

func TestEndToEnd_CoachThroughProxy(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, "Walk to the shops.")
	defer upstream.Close()
	h, err := NewProxyHandler(ProxyConfig{UpstreamURL: upstream.URL, Model: "test-model", APIKey: "secret"})
	require.NoError(t, err)
	proxy := httptest.NewServer(h)
	defer proxy.Close()

	c := New(NewProxyClient(proxy.URL, time.Second), time.Second)
	r := c.Ask(context.Background(), "ideas?", sampleSummary(), sampleRecent(2))
	assert.Equal(t, Reply{Text: "Walk to the shops."}, r)
}
