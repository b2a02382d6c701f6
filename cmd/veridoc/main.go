package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/veridoc/veridoc/internal/chunker"
	"github.com/veridoc/veridoc/internal/config"
	"github.com/veridoc/veridoc/internal/db"
	"github.com/veridoc/veridoc/internal/filestore"
	"github.com/veridoc/veridoc/internal/handler"
	"github.com/veridoc/veridoc/internal/job"
	"github.com/veridoc/veridoc/internal/matcher"
	"github.com/veridoc/veridoc/internal/middleware"
	"github.com/veridoc/veridoc/internal/schedule"
	"github.com/veridoc/veridoc/internal/service"
	"github.com/veridoc/veridoc/internal/store/postgres"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "veridoc",
		Short: "veridoc document verification server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run veridoc server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Int("window_words", cfg.Matching.WindowWords),
		zap.Int("overlap_words", cfg.Matching.OverlapWords),
	)

	st := postgres.NewStorage(conn)
	ck := chunker.New(cfg.Matching.WindowWords, cfg.Matching.OverlapWords)
	m := matcher.New(st, ck, cfg.Matching.FuzzyTopK, cfg.Matching.FuzzyConcurrency)

	var archive filestore.Store
	if cfg.Archive.Enabled {
		var err error
		archive, err = filestore.New(cfg.Archive)
		if err != nil {
			return fmt.Errorf("init archive store: %w", err)
		}
	}

	verifyService, err := service.NewVerifyService(st, ck, m, archive, cfg.Matching.CacheSize)
	if err != nil {
		return fmt.Errorf("init verify service: %w", err)
	}

	deps := handler.RouterDeps{
		Documents:       handler.NewDocumentHandler(verifyService),
		Evaluate:        handler.NewEvaluateHandler(verifyService),
		RateLimitWindow: time.Duration(cfg.RateLimitSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scheduler schedule.Scheduler
	if archive != nil {
		scheduler = schedule.NewCronScheduler()
		retention := time.Duration(cfg.Archive.RetentionDays) * 24 * time.Hour
		cleanup := job.NewArchiveCleanupJob(archive, retention)
		if err := scheduler.AddJob(cleanup, cfg.Archive.CleanupSpec); err != nil {
			return fmt.Errorf("schedule archive cleanup: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
