// Command dashboard is a terminal rendition of the weather dashboard. It
// geolocates from -location, renders every panel, then reads commands from
// stdin:
//
//	click <lat>,<lon>   open a session for a map click
//	recenter            geolocate again
//	marker              center the map on the marker
//	fullscreen          toggle the map size
//	quit                exit
//
// With -metrics-addr set, session and stale-result counters are served at
// /metrics on that address.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/skysense/internal/config"
	"github.com/kjstillabower/skysense/internal/dashboard"
	"github.com/kjstillabower/skysense/internal/observability"
	"github.com/kjstillabower/skysense/internal/validation"
)

func main() {
	location := flag.String("location", os.Getenv("DASHBOARD_LOCATION"), "starting position as lat,lon; empty means geolocation is unavailable")
	deny := flag.Bool("deny", false, "simulate the user denying geolocation")
	metricsAddr := flag.String("metrics-addr", os.Getenv("DASHBOARD_METRICS_ADDR"), "address to serve /metrics on; empty disables it")
	flag.Parse()

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

	locator := dashboard.StaticLocator{Denied: *deny}
	if *location != "" {
		coord, err := validation.ParseCoordinate(*location)
		if err != nil {
			logger.Fatal("invalid -location", zap.String("location", *location), zap.Error(err))
		}
		locator.Position = &coord
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *metricsAddr != "" {
		srv := newMetricsServer(*metricsAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("serving dashboard metrics", zap.String("addr", *metricsAddr))
	}

	ctrl := dashboard.NewController(locator, dashboard.NewHTTPSource(cfg.Dashboard), dashboard.NewTerminalView(os.Stdout), logger)
	_ = ctrl.Identify(ctx)
	_ = ctrl.Start(ctx)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !handleCommand(ctx, ctrl, line, logger) {
				return
			}
		}
	}
}

// newMetricsServer exposes the dashboard's Prometheus registry at /metrics.
func newMetricsServer(addr string) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", observability.MetricsHandler()).Methods(http.MethodGet)
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// handleCommand runs one stdin command and reports whether to keep reading.
func handleCommand(ctx context.Context, ctrl *dashboard.Controller, line string, logger *zap.Logger) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "":
	case "click":
		coord, err := validation.ParseCoordinate(arg)
		if err != nil {
			fmt.Fprintf(os.Stdout, "! %v\n", err)
			return true
		}
		go func() { _ = ctrl.Click(ctx, coord) }()
	case "recenter":
		go func() { _ = ctrl.Recenter(ctx) }()
	case "marker":
		if !ctrl.MarkerClick() {
			fmt.Fprintln(os.Stdout, "! no marker")
		}
	case "fullscreen":
		ctrl.ToggleFullscreen()
	case "quit", "exit":
		return false
	default:
		logger.Debug("unknown command", zap.String("command", cmd))
		fmt.Fprintf(os.Stdout, "! unknown command %q\n", cmd)
	}
	return true
}
