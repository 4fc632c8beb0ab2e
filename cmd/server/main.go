package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg"
	"github.com/gorilla/mux"

	"github.com/inamate/sketchpad/internal/auth"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/engine"
	mw "github.com/inamate/sketchpad/internal/middleware"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	gg.SetLogger(logger.With("component", "gg"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	authService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)

	newEngine := func() (*engine.Engine, error) {
		opts := engine.DefaultOptions()
		opts.Width = cfg.ViewportWidth
		opts.Height = cfg.ViewportHeight
		opts.MaxViewport = cfg.MaxViewport
		opts.GridSpacing = cfg.GridSpacing
		opts.GridStroke = render.Stroke{Color: cfg.GridColor, Width: 1}
		opts.Logger = logger
		return engine.NewEngine(opts)
	}

	hub := session.NewHub(newEngine, session.Limits{
		IdleTTL:     cfg.SessionIdleTTL,
		MaxSessions: cfg.MaxSessions,
	}, logger)
	go hub.Run(ctx)

	origins := cfg.Origins()
	sessionHandler := session.NewHandler(hub, authService, cfg.BackgroundColor, originPatterns(origins))

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			logger.Debug("write health response", "error", err)
		}
	}).Methods("GET")

	// Session creation (public)
	r.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")

	// Protected session routes
	api := r.PathPrefix("/sessions/{sessionId}").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/state", sessionHandler.State).Methods("GET")
	api.HandleFunc("/frame.png", sessionHandler.Frame).Methods("GET")
	api.HandleFunc("/grid", sessionHandler.UpdateGrid).Methods("PUT")

	// WebSocket endpoint; browsers can't set headers on upgrades
	r.Handle("/ws/sessions/{sessionId}", authService.QueryTokenMiddleware(http.HandlerFunc(sessionHandler.WebSocket)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// originPatterns turns allowed origins into host patterns for the websocket
// origin check.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			patterns = append(patterns, o)
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}
