package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tailscale.com/tsnet"

	"github.com/claude/runpro/internal/config"
	"github.com/claude/runpro/internal/gateway"
	"github.com/claude/runpro/internal/ingest/alpha"
	"github.com/claude/runpro/internal/ingest/hae"
	"github.com/claude/runpro/internal/mcp"
	"github.com/claude/runpro/internal/metrics"
	"github.com/claude/runpro/internal/plans"
	"github.com/claude/runpro/internal/server"
	"github.com/claude/runpro/internal/storage"
	"github.com/claude/runpro/internal/workoutlog"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "open storage (running migrations) and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("RunPro starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open storage; postgres runs migrations first
	ctx := context.Background()
	kv, err := storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.Path, cfg.Storage.Database.DSN(), cfg.Storage.Migrations)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Error("closing storage", "error", err)
		}
	}()
	log.Info("storage opened", "driver", cfg.Storage.Driver)

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Metrics
	reg := metrics.SetupPrometheus()
	m := metrics.NewManager(metrics.Namespace, metrics.Subsystem, reg)

	// AI gateway
	gw, err := gateway.NewGemini(ctx, gateway.Config{
		APIKey:    cfg.Gemini.APIKey,
		PlanModel: cfg.Gemini.PlanModel,
		ChatModel: cfg.Gemini.ChatModel,
		Language:  cfg.Gemini.Language,
		Timeout:   cfg.Gemini.Timeout,
		Search:    cfg.Gemini.Search,
	}, m, log)
	if err != nil {
		log.Error("failed to create gateway", "error", err)
		os.Exit(1)
	}

	// Domain components
	workouts := workoutlog.New(m, log)
	if cfg.Workouts.SeedDemo {
		skipped := workouts.Seed(workoutlog.DemoWorkouts())
		log.Info("demo workouts seeded", "entries", workouts.Len(), "skipped", skipped)
	}
	notifier := plans.NewNotifier()
	planStore := plans.NewStore(kv, notifier, m, log)

	if snap, err := planStore.Reconcile(ctx); err != nil {
		log.Warn("reading saved plans failed", "error", err)
	} else {
		log.Info("plan library loaded", "plans", len(snap.Plans), "active", snap.Active != nil)
	}

	// Create server
	srv := server.New(server.Deps{
		Workouts: workouts,
		Plans:    planStore,
		Notifier: notifier,
		KV:       kv,
		Gateway:  gw,
		HAE:      hae.NewProvider(workouts, log),
		Alpha:    alpha.NewProvider(workouts, log),
		Metrics:  m,
		Language: cfg.Gemini.Language,
		APIKey:   cfg.Server.APIKey,
	}, log)

	mcpSrv := mcp.New(&mcp.Service{Workouts: workouts, Plans: planStore}, Version, cfg.Gemini.Language, log)
	srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))
	if cfg.Metrics.Enabled {
		srv.Mount("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	// Listen on tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{
		Handler:   srv,
		ConnState: srv.ConnState,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
