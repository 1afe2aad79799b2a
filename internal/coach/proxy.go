package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rshade/ecotrack/internal/logging"
)

// APIKeyEnv is the only place the upstream credential is read from, either
// from the process environment or from a .env file.
const APIKeyEnv = "ECOTRACK_COACH_API_KEY"

const (
	maxRequestBytes  = 64 << 10
	maxPromptRunes   = 8000
	completionsPath  = "/v1/chat/completions"
	defaultMaxTokens = 300
)

// Error codes returned in proxy error bodies.
const (
	CodeMethodNotAllowed = "method_not_allowed"
	CodeInvalidRequest   = "invalid_request"
	CodePromptTooLong    = "prompt_too_long"
	CodeUpstreamFailed   = "upstream_failed"
	CodeEmptyReply       = "empty_reply"
)

// ErrMissingAPIKey is returned when no upstream credential is available.
var ErrMissingAPIKey = errors.New(APIKeyEnv + " is not set")

// LoadAPIKey returns the upstream credential. The environment wins; when it
// has no value, envFile (if it exists) is read with godotenv without
// modifying the process environment.
func LoadAPIKey(lookup func(string) (string, bool), envFile string) (string, error) {
	if v, ok := lookup(APIKeyEnv); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			vals, readErr := godotenv.Read(envFile)
			if readErr != nil {
				return "", fmt.Errorf("reading %s: %w", envFile, readErr)
			}
			if v := strings.TrimSpace(vals[APIKeyEnv]); v != "" {
				return v, nil
			}
		}
	}
	return "", ErrMissingAPIKey
}

// ProxyConfig configures a ProxyHandler.
type ProxyConfig struct {
	UpstreamURL string
	Model       string
	MaxTokens   int
	APIKey      string
	HTTPClient  *http.Client
}

// ProxyHandler serves POST {"prompt": ...} and answers {"reply": ...},
// holding the upstream credential server-side.
type ProxyHandler struct {
	endpoint  string
	model     string
	maxTokens int
	apiKey    string
	client    *http.Client
}

// NewProxyHandler validates cfg and returns a handler.
func NewProxyHandler(cfg ProxyConfig) (*ProxyHandler, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.UpstreamURL), "/")
	if base == "" {
		return nil, errors.New("upstream URL is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("model is required")
	}

	h := &ProxyHandler{
		endpoint:  base + completionsPath,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		apiKey:    cfg.APIKey,
		client:    cfg.HTTPClient,
	}
	if h.maxTokens <= 0 {
		h.maxTokens = defaultMaxTokens
	}
	if h.client == nil {
		h.client = &http.Client{Timeout: 30 * time.Second}
	}
	return h, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context()).With().
		Str("component", "coach").
		Str("operation", "Proxy").
		Logger()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "use POST")
		return
	}

	var req coachRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "body must be JSON with a prompt field")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "prompt is required")
		return
	}
	if len([]rune(prompt)) > maxPromptRunes {
		writeError(w, http.StatusBadRequest, CodePromptTooLong,
			fmt.Sprintf("prompt exceeds %d characters", maxPromptRunes))
		return
	}

	start := time.Now()
	reply, err := h.complete(r.Context(), prompt)
	upstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamFailures.Inc()
		code := CodeUpstreamFailed
		if errors.Is(err, ErrEmptyReply) {
			code = CodeEmptyReply
		}
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("upstream completion failed")
		writeError(w, http.StatusBadGateway, code, "the coach is unavailable")
		return
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Msg("proxied completion")
	writeJSON(w, http.StatusOK, coachResponse{Reply: reply})
}

func (h *ProxyHandler) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: h.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: h.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encoding upstream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", fmt.Errorf("upstream returned HTTP %d", resp.StatusCode)
	}

	var out chatResponse
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); decodeErr != nil {
		return "", fmt.Errorf("decoding upstream response: %w", decodeErr)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, coachResponse{Error: &ErrorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	proxyRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
