package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"celebrato-backend/config"
	"celebrato-backend/models"
	"celebrato-backend/routes"
	"celebrato-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	once := flag.Bool("once", false, "run a single greeting tick and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := config.NewLogger(cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log, *once); err != nil {
		log.Error("celebrato backend stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger, once bool) error {
	if _, err := config.ConnectDB(cfg.DBURL); err != nil {
		return err
	}
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.MessageTemplate{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	ctx := context.Background()
	store := services.NewGormStore(config.DB)
	if n, err := store.SeedDefaultTemplates(ctx); err != nil {
		return fmt.Errorf("seed templates: %w", err)
	} else if n > 0 {
		log.Info("seeded default templates", zap.Int("count", n))
	}

	greetings := services.NewGreetingService(store, store, newSender(cfg, log), log,
		services.WithDeliveryGuard(newGuard(cfg, log)),
		services.WithDispatchTimeout(cfg.Greeter.DispatchTimeout),
	)

	scheduler, err := services.NewScheduler(cfg.Greeter.Schedule, greetings.RunDailyTick, log)
	if err != nil {
		return err
	}
	if once {
		scheduler.RunNow()
		return nil
	}
	scheduler.Start()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.SetupRouter(routes.Dependencies{
		Config:    cfg,
		Greetings: greetings,
		Log:       log,
	})
	printRoutes(log, r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("greeting tick still running at shutdown")
	}
	return nil
}

func newSender(cfg *config.Config, log *zap.Logger) services.SMSSender {
	if cfg.Twilio.Enabled() {
		return services.NewTwilioSender(cfg.Twilio, log)
	}
	log.Warn("twilio credentials missing, SMS will only be logged")
	return services.NewLogSender(log)
}

func newGuard(cfg *config.Config, log *zap.Logger) services.DeliveryGuard {
	client, err := config.ConnectRedis(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, greetings may repeat on rerun", zap.Error(err))
		return services.NoopDeliveryGuard{}
	}
	if client == nil {
		return services.NoopDeliveryGuard{}
	}
	return services.NewRedisDeliveryGuard(client)
}

func printRoutes(log *zap.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		log.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
