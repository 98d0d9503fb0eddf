package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tendermarket/tender-lifecycle/internal/db"
	"github.com/tendermarket/tender-lifecycle/internal/handlers"
	"github.com/tendermarket/tender-lifecycle/internal/repository"
	"github.com/tendermarket/tender-lifecycle/internal/router"
	"github.com/tendermarket/tender-lifecycle/internal/router/config"
	"github.com/tendermarket/tender-lifecycle/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config: ", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.InitDb(ctx, cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	tenderRepo := repository.NewPostgresTenderRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	vendorRepo := repository.NewPostgresVendorRepository(dbPool)

	tenderService := services.NewTenderService(tenderRepo)
	bidService := services.NewBidService(bidRepo, dbPool)
	vendorService := services.NewVendorService(vendorRepo)
	sweeper := services.NewLifecycleSweeper(tenderRepo, vendorRepo, logger, cfg.PersistTimeout, cfg.SweepWorkers)

	tenderHandler := handlers.NewTenderHandler(tenderService, logger, cfg.RequestTimeout)
	bidHandler := handlers.NewBidHandler(bidService, logger, cfg.RequestTimeout)
	vendorHandler := handlers.NewVendorHandler(vendorService, logger, cfg.RequestTimeout)
	sweepHandler := handlers.NewSweepHandler(sweeper, logger)

	routes := router.InitRoutes(tenderHandler, bidHandler, vendorHandler, sweepHandler, logger)

	go runSweepLoop(ctx, sweeper, cfg.SweepInterval, logger)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: routes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	logger.Info("server is listening", slog.String("address", cfg.ServerAddress))
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}

// runSweepLoop периодически запускает цикл обработки жизненного цикла тендеров.
func runSweepLoop(ctx context.Context, sweeper *services.LifecycleSweeper, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := sweeper.RunLifecycleSweep(ctx, time.Now().UTC())
			if err != nil {
				logger.Error("lifecycle sweep failed", slog.String("error", err.Error()))
				continue
			}
			if report.Processed > 0 {
				logger.Info("lifecycle sweep finished",
					slog.Int("processed", report.Processed),
					slog.Int("transitioned", report.Transitioned),
					slog.Int("failures", len(report.Failures)))
			}
		}
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
