package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/vytor/vocabflash/internal/api"
	"github.com/vytor/vocabflash/internal/clock"
	"github.com/vytor/vocabflash/internal/config"
	"github.com/vytor/vocabflash/internal/db"
	"github.com/vytor/vocabflash/internal/flashcard"
	"github.com/vytor/vocabflash/internal/jobs"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/repository/sqlite"
	"github.com/vytor/vocabflash/internal/services"
	"github.com/vytor/vocabflash/internal/worker"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(pflag.CommandLine)
	pflag.Parse()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration:\n%v", err)
		os.Exit(2)
	}

	log.Info("===========================================")
	log.Info("VocabFlash Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("ledger_worker_count=%d", cfg.LedgerWorkerCount)
	log.Debug("ledger_queue_size=%d", cfg.LedgerQueueSize)
	log.Debug("target_retention=%.2f", cfg.TargetRetention)
	log.Debug("max_interval_days=%.0f", cfg.MaxIntervalDays)
	log.Debug("difficulty_scaling=%t", cfg.DifficultyScaling)
	log.Debug("behavior_modifiers=%v", cfg.BehaviorModifiers)
	log.Debug("simulated_clock=%t auto_advance=%t", cfg.SimulatedClock, cfg.ClockAutoAdvance)

	schedCfg, err := cfg.Scheduler()
	if err != nil {
		log.Error("invalid scheduler configuration: %v", err)
		os.Exit(2)
	}
	scheduler, err := flashcard.NewScheduler(schedCfg)
	if err != nil {
		log.Error("failed to build scheduler: %v", err)
		os.Exit(2)
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	cards := sqlite.NewCardStateRepository(database.DB)
	ledger := sqlite.NewReviewLedger(database.DB)

	ledgerPool := worker.NewPool(cfg.LedgerWorkerCount, cfg.LedgerQueueSize)
	ledgerPool.Start(context.Background())

	var (
		clk         clock.Clock = clock.System{}
		simulated   *clock.Simulated
		autoAdvance *clock.Simulated
	)
	if cfg.SimulatedClock {
		simulated = clock.NewSimulated()
		clk = simulated
		if cfg.ClockAutoAdvance {
			autoAdvance = simulated
		}
		log.Warn("simulated clock enabled; PUT /clock moves time for every user")
	}

	reviewService := services.NewReviewService(services.ReviewDeps{
		Scheduler:   scheduler,
		Cards:       cards,
		Ledger:      ledger,
		Queue:       jobs.NewWorkerQueue(ledgerPool, ledger),
		Clock:       clk,
		AutoAdvance: autoAdvance,
	})

	srv := &api.Server{
		ReviewService: reviewService,
		DB:            database,
		LedgerQueue:   ledgerPool,
		Clock:         simulated,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Queued ledger entries are written before the database closes.
	log.Debug("draining review ledger queue")
	ledgerPool.Stop()

	log.Info("===========================================")
	log.Info("VocabFlash Server Stopped")
	log.Info("===========================================")
}
