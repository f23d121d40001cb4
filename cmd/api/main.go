package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/johnquangdev/meeting-notes/docs"
	"github.com/johnquangdev/meeting-notes/internal/adapter/handler"
	"github.com/johnquangdev/meeting-notes/internal/bootstrap"
	httpmw "github.com/johnquangdev/meeting-notes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-notes/internal/usecase/reconcile"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	pkgvalidator "github.com/johnquangdev/meeting-notes/pkg/validator"
)

// @title           Meeting Notes API
// @version         1.0
// @description     Turns meeting transcripts into stored summaries and emails them, with a sweep that re-sends anything left unsent.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("❌ Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🔧 Initializing dependencies...")
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Warn("⚠️ Failed to close connections", zap.Error(err))
		}
	}()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, httpmw.SignatureHeader},
	}))

	var archiveHandler *handler.ArchiveHandler
	if app.Archive != nil {
		archiveHandler = handler.NewArchiveHandler(app.Archive, logger)
	}
	router := handler.NewRouter(
		cfg,
		handler.NewAIController(app.Service, logger),
		handler.NewSweepHandler(app.Sweeper, logger),
		archiveHandler,
	)
	router.Setup(e)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("store", app.Store.Backend()),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	if cfg.Sweep.Interval > 0 {
		scheduler := reconcile.NewScheduler(app.Sweeper, cfg.Sweep.Interval, cfg.Sweep.Timeout, logger)
		if err := scheduler.Start(gctx); err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			return scheduler.Stop()
		})
	} else {
		logger.Info("⏸️ Sweep scheduler disabled; trigger sweeps through /api/email-notion-summary")
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("🛑 Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Info("✅ Server stopped gracefully")
		return nil
	})

	return g.Wait()
}
