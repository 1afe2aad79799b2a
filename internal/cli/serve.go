package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecotrack/internal/coach"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/logging"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// NewServeCmd creates the serve command, which runs the coach proxy.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the coach proxy server",
		Long: `Runs an HTTP server that forwards coach prompts to an OpenAI-compatible
API. The API key is read from $ECOTRACK_COACH_API_KEY, or from
~/.ecotrack/.env, and never leaves the server.

Endpoints:
  POST /v1/coach   {"prompt": "..."} -> {"reply": "..."}
  GET  /healthz    liveness probe
  GET  /metrics    Prometheus metrics`,
		Example: `  ECOTRACK_COACH_API_KEY=sk-... ecotrack serve
  ecotrack serve --addr 0.0.0.0:9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig().Server
			if cmd.Flags().Changed("addr") {
				cfg.Address = addr
			}

			envFile, err := config.GetEnvFilePath()
			if err != nil {
				return err
			}
			apiKey, err := coach.LoadAPIKey(os.LookupEnv, envFile)
			if err != nil {
				return err
			}

			handler, err := coach.NewProxyHandler(coach.ProxyConfig{
				UpstreamURL: cfg.UpstreamURL,
				Model:       cfg.Model,
				MaxTokens:   cfg.MaxTokens,
				APIKey:      apiKey,
				HTTPClient:  &http.Client{Timeout: cfg.WriteTimeout},
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Address)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Address, err)
			}
			cmd.Printf("Coach proxy listening on http://%s\n", ln.Addr())

			return serveProxy(ctx, ln, newServeMux(handler), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}

// newServeMux routes the proxy, health and metrics endpoints.
func newServeMux(proxy http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/v1/coach", proxy)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// requestLogger logs each request with the context logger.
func requestLogger(ctx context.Context, next http.Handler) http.Handler {
	log := logging.FromContext(ctx).With().Str("component", "serve").Logger()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}

// serveProxy serves on ln until ctx is cancelled, then shuts down gracefully.
func serveProxy(ctx context.Context, ln net.Listener, mux http.Handler, cfg config.ServerConfig) error {
	srv := &http.Server{
		Handler:           requestLogger(ctx, mux),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log := logging.FromContext(ctx)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("component", "serve").Str("address", ln.Addr().String()).Msg("coach proxy started")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info().Str("component", "serve").Msg("coach proxy stopped")
		return nil
	})

	return g.Wait()
}
