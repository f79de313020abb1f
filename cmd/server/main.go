package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/questgen/internal/api"
	"github.com/dgallion1/questgen/internal/archive"
	"github.com/dgallion1/questgen/internal/config"
	"github.com/dgallion1/questgen/internal/metrics"
	"github.com/dgallion1/questgen/internal/parser"
	"github.com/dgallion1/questgen/internal/pipeline"
	"github.com/dgallion1/questgen/internal/questions"
	"github.com/dgallion1/questgen/internal/upload"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := config.LoadDotenv(); err != nil {
		log.Error("invalid .env file", "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Error("upload store", "error", err)
		os.Exit(1)
	}

	// A nil *archive.Client must not end up inside the interface.
	var archiver pipeline.Archiver
	if cfg.ArchiveEnabled() {
		client, err := archive.NewClient(ctx, archive.Options{
			Bucket:          cfg.ArchiveBucket,
			Endpoint:        cfg.ArchiveEndpoint,
			Region:          cfg.ArchiveRegion,
			AccessKeyID:     cfg.ArchiveAccessKeyID,
			SecretAccessKey: cfg.ArchiveSecretAccessKey,
		})
		if err != nil {
			log.Error("archive client", "error", err)
			os.Exit(1)
		}
		archiver = client
		log.Info("archiving uploads", "bucket", cfg.ArchiveBucket)
	}

	// Initialize pipeline.
	stats := metrics.NewPhases(cfg.StatsWindow)
	worker := pipeline.NewWorker(uploads, archiver, stats, log, parser.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	})
	orch := pipeline.NewOrchestrator(worker, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, uploads, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting questgen", "port", cfg.Port, "workers", cfg.WorkerCount, "languages", questions.Languages())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
