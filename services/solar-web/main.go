package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"solar-predictor/internal/session"
)

func main() {
	// 1. Načtení konfigurace
	cfg := LoadConfig()

	// 2. Logger: JSON na stdout, volitelně i do MQTT
	var out io.Writer = os.Stdout
	if cfg.MQTTBroker != "" {
		opts := mqtt.NewClientOptions().AddBroker(cfg.MQTTBroker).SetClientID(cfg.MQTTClientID)
		client := mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			// logger ještě nemáme, použijeme výchozí slog
			slog.Error("Fatal MQTT Error", "err", token.Error())
			os.Exit(1)
		}
		defer client.Disconnect(250)
		out = io.MultiWriter(os.Stdout, NewMqttLogWriter(client, "solar-web"))
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	logger.Info("Startuji Solar Web", "port", cfg.HTTPPort, "delay", cfg.PredictionDelay, "valkey", cfg.ValkeyAddr != "", "mqtt", cfg.MQTTBroker != "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Úložiště session: Valkey, nebo paměť
	var store session.Store
	if cfg.ValkeyAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.ValkeyAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("Kritická chyba: Nelze se připojit k Valkey", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		mem := session.NewMemoryStore(cfg.SessionTTL)
		go mem.StartJanitor(ctx, time.Minute, logger)
		store = mem
	}

	// 4. Wiring
	tracker := session.NewTracker(store, session.WithDelay(cfg.PredictionDelay), session.WithLogger(logger))
	metrics := NewMetrics()

	web, err := NewWebHandler(tracker, metrics, logger)
	if err != nil {
		logger.Error("Kritická chyba: Nepodařilo se načíst HTML šablony", "error", err)
		os.Exit(1)
	}
	api := NewAPIHandler(tracker, metrics, logger)
	limiter := rate.NewLimiter(rate.Limit(cfg.APIRateLimit), cfg.APIRateBurst)

	handler, err := NewRouter(web, api, metrics, limiter, logger)
	if err != nil {
		logger.Error("Kritická chyba: Nepodařilo se sestavit router", "error", err)
		os.Exit(1)
	}

	// 5. HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Web server naslouchá", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server nečekaně spadl", "error", err)
			os.Exit(1)
		}
	}()

	// 6. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Ukončuji službu...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Chyba při ukončování serveru", "error", err)
	}
}
