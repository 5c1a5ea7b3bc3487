package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-browser/internal/api"
	"catalog-browser/internal/metrics"
	"catalog-browser/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog page, JSON API and gRPC service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	browser, closeData, err := openDataset(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeData(); err != nil {
			slog.Warn("Error closing dataset source", "error", err)
		}
	}()

	sessions := session.NewRegistry(browser, cfg.Sessions.Limit)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, sessions.Len)

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter)
	registerHealthCheck(httpRouter, sessions)
	httpRouter.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	api.NewHTTPHandler(browser, sessions, m).RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	serveErrs := make(chan error, 2)
	go func() {
		slog.Info("HTTP server listening", "port", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrs <- err
		}
	}()

	// --- Setup & Start gRPC Server ---
	grpcServer := setupGRPCServer(api.NewGRPCHandler(browser, m))
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		return err
	}
	go func() {
		slog.Info("gRPC server listening", "port", cfg.GrpcServer.Port)
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrs <- err
		}
	}()

	// --- Session expiry ---
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if cfg.Sessions.TTL > 0 {
		go sweepSessions(sweepCtx, sessions, cfg.Sessions.TTL)
	}

	// --- Graceful Shutdown ---
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, starting graceful shutdown", "signal", sig.String())
	case err := <-serveErrs:
		slog.Error("Server failed, shutting down", "error", err)
	}

	shutdown(httpServer, grpcServer)
	return nil
}

func setupBaseMiddleware(router *chi.Mux) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
}

func registerHealthCheck(router *chi.Mux, sessions *session.Registry) {
	router.Get("/api/v1/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"serviceName": defaultAppName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"dataSource":  cfg.DataSource,
			"sessions":    sessions.Len(),
		})
	})
}

func setupGRPCServer(handler *api.GRPCHandler) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(api.LoggingInterceptor()))

	api.RegisterCatalogBrowserServer(s, handler)

	// Register gRPC Health Checking Protocol service.
	grpc_health_v1.RegisterHealthServer(s, health.NewServer())

	// Enable gRPC server reflection (useful for tools like grpcurl).
	reflection.Register(s)

	return s
}

func sweepSessions(ctx context.Context, sessions *session.Registry, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Expire(ttl); n > 0 {
				slog.Debug("Expired idle sessions", "count", n)
			}
		}
	}
}

func shutdown(httpServer *http.Server, grpcServer *grpc.Server) {
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server graceful shutdown failed", "error", err)
	} else {
		slog.Info("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		slog.Info("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		slog.Warn("gRPC server graceful shutdown timed out, forcing stop", "error", shutdownCtx.Err())
		grpcServer.Stop()
	}
}
