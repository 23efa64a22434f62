package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohamedkhairy/ta-stream/internal/config"
	"github.com/mohamedkhairy/ta-stream/internal/engine"
	"github.com/mohamedkhairy/ta-stream/internal/pubsub"
	"github.com/mohamedkhairy/ta-stream/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting indicator engine",
		logger.Int("health_port", cfg.Engine.HealthCheckPort),
		logger.String("quote_stream", cfg.Engine.QuoteStream),
		logger.String("output_stream", cfg.Engine.OutputStream),
		logger.String("consumer_group", cfg.Engine.ConsumerGroup),
	)

	// Initialize Redis client
	redisClient, err := pubsub.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize Redis client",
			logger.ErrorField(err),
		)
	}
	defer redisClient.Close()

	// Initialize indicator registry
	registry := engine.NewRegistry()
	if err := engine.RegisterDefaults(registry, cfg.Engine); err != nil {
		logger.Fatal("Failed to register indicators",
			logger.ErrorField(err),
		)
	}

	logger.Info("Registered indicators",
		logger.Int("count", len(registry.ListAvailable())),
	)

	// Initialize engine
	eng := engine.NewEngine(registry)
	defer eng.Stop()

	// Initialize snapshot publisher
	publisherConfig := engine.DefaultPublisherConfig(cfg.Engine.OutputStream)
	publisherConfig.BatchSize = cfg.Engine.BatchSize
	publisher := engine.NewPublisher(redisClient, publisherConfig)
	publisher.Start()
	defer publisher.Close()

	// Publish a snapshot after every processed quote
	eng.SetOnSnapshot(func(snapshot *engine.Snapshot) {
		if err := publisher.Publish(snapshot); err != nil {
			logger.Error("Failed to publish snapshot",
				logger.ErrorField(err),
				logger.String("symbol", snapshot.Symbol),
			)
		}
	})

	// Initialize quote consumer
	consumerConfig := engine.DefaultConsumerConfig(cfg.Engine.QuoteStream, cfg.Engine.ConsumerGroup)
	consumerConfig.BatchSize = cfg.Engine.BatchSize
	consumerConfig.Symbols = cfg.Engine.Symbols

	consumer := engine.NewQuoteConsumer(redisClient, consumerConfig)
	consumer.SetProcessor(eng)

	if err := consumer.Start(); err != nil {
		logger.Fatal("Failed to start quote consumer",
			logger.ErrorField(err),
		)
	}
	defer consumer.Stop()

	logger.Info("Indicator engine started",
		logger.String("stream", cfg.Engine.QuoteStream),
		logger.String("consumer", consumerConfig.ConsumerName),
	)

	// Setup health and metrics server
	var wg sync.WaitGroup
	healthRouter := setupHealthAndMetricsServer(eng, consumer)
	healthServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Engine.HealthCheckPort),
		Handler:      healthRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting health and metrics server",
			logger.Int("port", cfg.Engine.HealthCheckPort),
		)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Health and metrics server failed",
				logger.ErrorField(err),
			)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.Info("Shutting down indicator engine")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Health server shutdown failed", logger.ErrorField(err))
	}

	wg.Wait()

	logger.Info("Indicator engine stopped")
}

// setupHealthAndMetricsServer sets up HTTP endpoints for health checks and metrics
func setupHealthAndMetricsServer(
	eng *engine.Engine,
	consumer *engine.QuoteConsumer,
) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		healthStatus := map[string]interface{}{
			"status":    "UP",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks": map[string]interface{}{
				"consumer": map[string]interface{}{
					"status":  "ok",
					"running": consumer.IsRunning(),
					"stats":   consumer.GetStats(),
				},
				"engine": map[string]interface{}{
					"status":       "ok",
					"symbol_count": eng.GetSymbolCount(),
				},
			},
		}

		if !consumer.IsRunning() {
			status = http.StatusServiceUnavailable
			healthStatus["status"] = "DOWN"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(healthStatus)
	}).Methods("GET")

	// Readiness probe
	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if consumer.IsRunning() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("READY"))
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
		}
	}).Methods("GET")

	// Liveness probe
	router.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("LIVE"))
	}).Methods("GET")

	// Indicator catalog endpoint
	router.HandleFunc("/indicators", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"symbols":    eng.GetAllSymbols(),
			"indicators": eng.Registry().GetAllMetadata(),
		})
	}).Methods("GET")

	// Per-symbol values endpoint
	router.HandleFunc("/indicators/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		symbol := mux.Vars(r)["symbol"]
		values, err := eng.GetIndicators(symbol)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"symbol": symbol,
			"values": values,
		})
	}).Methods("GET")

	// Metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	return router
}
