package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"briefnote/internal/auth"
	"briefnote/internal/config"
	"briefnote/internal/db"
	httpx "briefnote/internal/http"
	"briefnote/internal/jobs"
	"briefnote/internal/logger"
	"briefnote/internal/note"
	"briefnote/internal/summary"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		zl.Fatal("db migrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cache *summary.Cache
	if cfg.RedisAddr != "" {
		cache, err = summary.NewCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SummaryCacheTTL)
		if err != nil {
			zl.Fatal("redis connect failed", zap.Error(err))
		}
		defer func() { _ = cache.Close() }()
	}

	backend := summary.NewClient(cfg.SummarizerURL, cfg.SummarizerToken, cfg.SummarizerTimeout)
	noteStore := &note.Store{DB: gdb}
	jobsRepo := &jobs.Repo{DB: gdb}
	orchestrator := summary.NewOrchestrator(backend, noteStore, cache, jobsRepo, zl)
	sessions := note.NewManager(noteStore, orchestrator)

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	r := httpx.NewRouter(cfg, gdb, jwtSvc, sessions, zl)

	worker := &jobs.Worker{ID: "worker-1", Repo: jobsRepo, DB: gdb, Backend: backend, Log: zl}
	go worker.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
