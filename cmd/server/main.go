package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/vcom/internal/config"
	"github.com/mmynk/vcom/internal/mentor"
	"github.com/mmynk/vcom/internal/middleware"
	"github.com/mmynk/vcom/internal/outreach"
	"github.com/mmynk/vcom/internal/service"
	"github.com/mmynk/vcom/internal/storage/sqlite"
	"github.com/mmynk/vcom/pkg/api"
	"github.com/mmynk/vcom/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Initialize SQLite storage
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	session := outreach.NewSession(ctx, store, outreach.WithLocation(loc))

	var m mentor.Mentor
	if cfg.MentorEnabled() {
		m = mentor.NewOpenAI(mentor.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.MentorModel,
			BaseURL: cfg.MentorBaseURL,
		})
		slog.Info("Mentor enabled", "model", cfg.MentorModel)
	} else {
		slog.Warn("OPENAI_API_KEY not set, mentor chat disabled")
	}

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())
	mux := http.NewServeMux()

	// Register Connect services
	outreachPath, outreachHandler := api.NewOutreachServiceHandler(service.NewOutreachService(session), interceptors)
	mux.Handle(outreachPath, outreachHandler)

	mentorPath, mentorHandler := api.NewMentorServiceHandler(service.NewMentorService(m), interceptors)
	mux.Handle(mentorPath, mentorHandler)

	mux.Handle(cfg.MetricsPath, promhttp.Handler())

	// Wrap with h2c for HTTP/2 without TLS (required for Connect streaming)
	handler := h2c.NewHandler(corsMiddleware(mux), &http2.Server{})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
