package main

//	@title			CoopSense API
//	@version		0.1.0
//	@description	Poultry house environment risk monitoring API.
//	@BasePath		/api/v1

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/HerbHall/coopsense/api/swagger"
	"github.com/HerbHall/coopsense/internal/config"
	"github.com/HerbHall/coopsense/internal/engine"
	"github.com/HerbHall/coopsense/internal/event"
	"github.com/HerbHall/coopsense/internal/monitor"
	"github.com/HerbHall/coopsense/internal/mqtt"
	"github.com/HerbHall/coopsense/internal/notify"
	"github.com/HerbHall/coopsense/internal/server"
	"github.com/HerbHall/coopsense/internal/version"
	"github.com/HerbHall/coopsense/internal/ws"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration (before logger, so log level/format can be configured).
	viperCfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger from configuration.
	logger, err := config.NewLogger(viperCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("CoopSense server starting", zap.String("version", version.Short()))

	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded",
			zap.String("component", "config"),
			zap.String("source", f),
		)
	} else {
		logger.Warn("no configuration file found, using defaults",
			zap.String("component", "config"),
		)
	}

	// Create shared services
	bus := event.NewBus(logger.Named("event"))
	logger.Info("event bus created", zap.String("component", "event"))

	// Assemble the risk engine from the configured ranges.
	monCfg := monitor.Config{
		TickInterval: viperCfg.GetDuration("monitor.tick_interval"),
		AlertDwell:   viperCfg.GetDuration("monitor.alert_dwell"),
		HistorySize:  viperCfg.GetInt("monitor.history_size"),
		Seed:         viperCfg.GetInt64("monitor.seed"),
	}
	if err := viperCfg.UnmarshalKey("monitor.ranges", &monCfg.Ranges); err != nil {
		logger.Fatal("failed to parse monitor ranges", zap.Error(err))
	}

	table, err := monCfg.RangeTable()
	if err != nil {
		if errors.Is(err, engine.ErrConfig) {
			logger.Fatal("invalid monitor range configuration", zap.Error(err))
		}
		logger.Fatal("failed to build range table", zap.Error(err))
	}
	eng := engine.New(table)
	logger.Info("risk engine initialized",
		zap.String("component", "engine"),
		zap.Int("ranges", len(table.Ranges())),
	)

	// Monitor with the built-in simulator as reading source.
	mon := monitor.New(monCfg, eng, nil, bus, logger.Named("monitor"))
	monitorHandler := monitor.NewHandler(mon, logger.Named("monitor"))

	// WebSocket handler for the live monitor feed.
	wsHandler := ws.NewHandler(bus, logger.Named("ws"))
	logger.Info("websocket handler initialized", zap.String("component", "ws"))

	// MQTT publisher (no-op without a broker URL).
	var mqttCfg mqtt.Config
	if err := viperCfg.UnmarshalKey("mqtt", &mqttCfg); err != nil {
		logger.Fatal("failed to parse mqtt configuration", zap.Error(err))
	}
	publisher := mqtt.New(mqttCfg, logger.Named("mqtt"))
	publisher.Subscribe(bus)

	// Webhook notifier for alert pulses.
	var webhookCfg notify.WebhookConfig
	if err := viperCfg.UnmarshalKey("notify.webhook", &webhookCfg); err != nil {
		logger.Fatal("failed to parse webhook configuration", zap.Error(err))
	}
	if webhookCfg.URL != "" {
		dispatcher := notify.NewDispatcher(logger.Named("notify"),
			notify.NewWebhookNotifier(webhookCfg))
		dispatcher.Subscribe(bus)
		logger.Info("webhook notifier initialized",
			zap.String("component", "notify"),
			zap.String("url", webhookCfg.URL),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := publisher.Start(ctx); err != nil {
		logger.Error("mqtt publisher start failed", zap.Error(err))
	}
	mon.Start(ctx)

	// Create and start HTTP server
	addr := viperCfg.GetString("server.host") + ":" + viperCfg.GetString("server.port")
	if addr == ":" {
		addr = "0.0.0.0:8080"
	}
	devMode := viperCfg.GetBool("server.dev_mode")
	readyCheck := server.ReadinessChecker(func(_ context.Context) error {
		if mon.Latest() == nil {
			return errors.New("no accepted sample yet")
		}
		return nil
	})
	srv := server.New(addr, logger.Named("server"), readyCheck, devMode,
		monitorHandler, wsHandler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("CoopSense server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	mon.Stop()
	if err := publisher.Stop(shutdownCtx); err != nil {
		logger.Error("mqtt shutdown error", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("CoopSense server stopped")
}
