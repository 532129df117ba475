package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"pinboard/internal/audit"
	"pinboard/internal/auth"
	authhandler "pinboard/internal/auth/handler"
	"pinboard/internal/board"
	boardhandler "pinboard/internal/board/handler"
	"pinboard/internal/identity"
	"pinboard/internal/platform/config"
	"pinboard/internal/platform/httpserver"
	"pinboard/internal/platform/logger"
	"pinboard/internal/platform/metrics"
	"pinboard/internal/platform/middleware"
	"pinboard/internal/platform/tracing"
	"pinboard/internal/session"
	httptransport "pinboard/internal/transport/http"
)

// main wires the dependency graph and owns the server lifecycle. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if cfg.TraceStdout {
		shutdown, err := tracing.Init(os.Stdout)
		if err != nil {
			log.Error("trace pipeline setup failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				log.Warn("trace pipeline shutdown failed", "error", err)
			}
		}()
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	users := identity.NewInMemoryStore()
	seed := users.Add(cfg.SeedUsername, cfg.SeedPassword)
	sessions := session.NewRegistry()
	posts := board.NewInMemoryStore()

	var sink audit.Sink = audit.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		cancel()
		if err != nil {
			log.Error("audit sink unavailable", "error", err)
			os.Exit(1)
		}
		sink = kafkaSink
	}
	auditor := audit.NewPublisher(sink, log)
	defer func() {
		if err := auditor.Close(); err != nil {
			log.Warn("audit sink close failed", "error", err)
		}
	}()

	authService := auth.NewService(users, sessions, auditor, m, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:  authhandler.New(authService, log),
		Board: boardhandler.New(posts, auditor, m, log),
		Gate:  middleware.RequireSession(authService, log),
		Health: func() httptransport.Stats {
			return httptransport.Stats{
				Users:          users.Count(context.Background()),
				Posts:          posts.Count(context.Background()),
				ActiveSessions: sessions.Count(),
			}
		},
		Metrics:  m,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   log,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting pinboard", "addr", cfg.Addr, "seed_user", seed.Username)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
