package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/skysense/internal/client"
	"github.com/kjstillabower/skysense/internal/config"
	httphandler "github.com/kjstillabower/skysense/internal/http"
	"github.com/kjstillabower/skysense/internal/observability"
	"github.com/kjstillabower/skysense/internal/service"
	"github.com/kjstillabower/skysense/internal/token"
)

const inFlightCheckInterval = 100 * time.Millisecond

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if cfg.WeatherAPIKey == "" {
		logger.Warn("WEATHER_API_KEY not set; weather routes will fail upstream")
	}

	weatherClient, err := client.NewWeatherAPIClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	if err != nil {
		logger.Fatal("weather client", zap.Error(err))
	}
	weatherService := service.NewWeatherService(weatherClient)

	issuer := token.NewIssuer(cfg.ChatbotIdentitySecret, token.DefaultTTL, cfg.Identity)
	if !issuer.Configured() {
		logger.Warn("CHATBOT_IDENTITY_SECRET not set; token route will return 500")
	}

	handler := httphandler.NewHandler(weatherService, issuer, logger)
	router := httphandler.NewRouter(handler, httphandler.RouterConfig{
		PublicDir:      cfg.PublicDir,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)

	observability.RegisterUpstreamGauges(cfg.MetricsWindow)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort), zap.String("public_dir", cfg.PublicDir))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	logger.Info("waiting for in-flight requests", zap.Int64("count", httphandler.InFlightCount()))
	if err := httphandler.WaitForInFlight(shutdownCtx, inFlightCheckInterval); err != nil {
		logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
	}

	if err := observability.FlushTelemetry(context.Background(), logger, cfg.MetricsWindow); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
