// Package server orchestrates all components: config, method registry,
// router, HTTP entry point, and the optional COMMS transport.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	comms "github.com/nats-io/nats.go"

	"github.com/morezero/method-gateway/internal/config"
	"github.com/morezero/method-gateway/internal/methods"
	"github.com/morezero/method-gateway/pkg/commsutil"
	"github.com/morezero/method-gateway/pkg/dispatch"
	"github.com/morezero/method-gateway/pkg/router"
)

const logPrefix = "server:server"

// Server is the method-gateway orchestrator.
type Server struct {
	cfg        *config.Config
	nc         *comms.Conn
	httpServer *http.Server
	router     *router.Router
}

// Run starts the gateway, blocks until shutdown signal, then cleans up.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("%s - failed to load config: %w", logPrefix, err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info(fmt.Sprintf("%s - Starting method-gateway", logPrefix))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &Server{cfg: cfg}

	// Step 1: Build the method registry and router. Every produced failure is
	// logged through the notification hook.
	reg := methods.NewRegistry()
	s.router = router.New(router.Config{
		Registry:     reg,
		BatchMaxSize: cfg.BatchMaxSize,
		OnError:      logErrorHook,
	})
	slog.Info(fmt.Sprintf("%s - Registered methods: %v", logPrefix, reg.Names()))

	// Step 2: Optional COMMS transport.
	if cfg.COMMSURL != "" {
		subject := cfg.COMMSSubject
		if subject == "" {
			subject = commsutil.SubjectMethods
		}
		nc, err := commsutil.Connect(cfg.COMMSURL, cfg.COMMSName)
		if err != nil {
			return fmt.Errorf("%s - failed to connect to COMMS: %w", logPrefix, err)
		}
		s.nc = nc
		sub, err := SubscribeMethods(ctx, nc, subject, s.router, cfg.RequestTimeout)
		if err != nil {
			nc.Close()
			return fmt.Errorf("%s - failed to subscribe to %s: %w", logPrefix, subject, err)
		}
		defer sub.Unsubscribe()
		slog.Info(fmt.Sprintf("%s - Subscribed to %s", logPrefix, subject))
	}

	// Step 3: HTTP entry point.
	mux := http.NewServeMux()
	mux.Handle(cfg.BasePath+"/", MethodHandler(s.router, cfg.BasePath, cfg.RequestTimeout))
	mux.HandleFunc("/health", handleHealth(reg))
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})

	s.httpServer = &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	go func() {
		slog.Info(fmt.Sprintf("%s - HTTP server listening on %s", logPrefix, cfg.HTTPAddr))
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error(fmt.Sprintf("%s - HTTP server error: %v", logPrefix, err))
		}
	}()

	slog.Info(fmt.Sprintf("%s - Method-gateway is ready", logPrefix))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info(fmt.Sprintf("%s - Received signal %s, shutting down", logPrefix, sig))

	// Graceful shutdown
	s.httpServer.Shutdown(ctx)
	if s.nc != nil {
		s.nc.Drain()
	}

	slog.Info(fmt.Sprintf("%s - Shutdown complete", logPrefix))
	return nil
}

// logErrorHook is the production notification hook: every failure the router
// produces is logged once with its originating request.
func logErrorHook(err *dispatch.CallError, req *dispatch.Request) {
	slog.Warn(fmt.Sprintf("%s - call failed: kind=%s path=%s remote=%s message=%s",
		logPrefix, err.Kind, req.Path, req.RemoteAddr, err.Message))
}
