package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/rental-engine/internal/config"
	"github.com/segyhp/rental-engine/internal/repository"
	"github.com/segyhp/rental-engine/internal/scheduler"
	"github.com/segyhp/rental-engine/internal/service"
	"github.com/segyhp/rental-engine/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reportTimeout = 5 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	zl.Info("Starting rental scheduler...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Health.Timeout)
	db, err := repository.Open(ctx, cfg.Database)
	cancel()
	if err != nil {
		zl.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// The report only reads, so it runs without the cache
	reservationService := service.NewReservationService(
		repository.NewUserRepository(db),
		repository.NewBookRepository(db),
		repository.NewReservationRepository(db),
		repository.NewTransactor(db),
		nil,
		zl,
	)
	reporter := scheduler.NewOverdueReporter(reservationService, zl.Named("overdue"))

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.Scheduler.Location()),
	)

	if _, err := reporter.Schedule(c, cfg.Scheduler.OverdueReportSpec, reportTimeout); err != nil {
		zl.Fatal("Error scheduling overdue report job", zap.Error(err))
	}

	// Start the scheduler
	c.Start()
	zl.Info("Scheduler started successfully",
		zap.String("overdue_spec", cfg.Scheduler.OverdueReportSpec),
		zap.String("timezone", cfg.Scheduler.Timezone),
	)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	zl.Info("Scheduler stopped")
}
