package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
	api "github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/api"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/auth"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/config"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/service"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/storage"
)

type app struct {
	logger   internal.Logger
	workouts *service.WorkoutService
}

func (a *app) Logger() internal.Logger           { return a.logger }
func (a *app) Workouts() *service.WorkoutService { return a.workouts }

func newLogger(cfg *config.Config) (internal.Logger, func()) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zc.Level = level
	}
	z, err := zc.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return internal.NewZapLogger(z.Sugar()), func() { _ = z.Sync() }
}

func main() {
	cfg := config.Load()
	logger, flush := newLogger(cfg)
	defer flush()

	store, err := storage.NewEntryStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer store.Close()

	if cfg.DemoMode {
		if err := service.SeedDemoEntries(context.Background(), store); err != nil {
			logger.Warnf("demo seeding failed: %v", err)
		}
	}

	a := &app{
		logger:   logger,
		workouts: service.NewWorkoutService(store, logger),
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.APIToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := r.Group("/", auth.AuthMiddleware(provider, cfg))
	protected.POST("/entries", api.PostEntry(a))
	protected.GET("/entries", api.GetEntries(a))
	protected.DELETE("/entries/:id", api.DeleteEntry(a))
	protected.POST("/entries/export", api.PostExport(a))
	protected.GET("/entries/stats", api.GetStats(a))

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	go func() {
		logger.Infof("Server running on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
}
