// cmd/suggestion-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/common/queue"

	er "dining-concierge/internal/workers/suggestions/enrich-record"
	fr "dining-concierge/internal/workers/suggestions/find-restaurants"
	pr "dining-concierge/internal/workers/suggestions/process-request"
	sd "dining-concierge/internal/workers/suggestions/send-digest"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting suggestion worker...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("suggestion-worker")
	defer obs.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init AWS Clients ---
	sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("ses client failed", zap.Error(err))
	}
	snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("sns client failed", zap.Error(err))
	}

	// --- Wire Pipeline Components ---
	requestQueue := queue.NewRedisQueue(redis.Client, cfg.Queue, log)

	resolver := fr.NewResolver(&fr.Config{
		Index:      cfg.Search.Index,
		MaxResults: cfg.Search.MaxResults,
		SampleSize: cfg.Search.SampleSize,
		Timeout:    time.Duration(cfg.Search.Timeout) * time.Millisecond,
	}, esClient.Client, log)

	store := er.NewStore(er.LoadConfig(), pg.DB, log)

	dispatcher := sd.NewDispatcher(&sd.Config{
		EmailEnabled: cfg.Notifications.Email.Enabled,
		FromEmail:    cfg.Notifications.Email.FromEmail,
		SMSEnabled:   cfg.Notifications.SMS.Enabled,
		TopicARN:     cfg.Notifications.SMS.TopicARN,
		Timeout:      10 * time.Second,
	}, sesClient, snsClient, log)

	handler := pr.NewHandler(&pr.Config{
		BatchSize:  cfg.Worker.BatchSize,
		SampleSize: cfg.Search.SampleSize,
		Timeout:    time.Duration(cfg.Worker.Timeout) * time.Millisecond,
	}, requestQueue, resolver, store, dispatcher,
		rand.New(rand.NewSource(time.Now().UnixNano())), log)

	// --- Poll Loop ---
	pollInterval := time.Duration(cfg.Worker.PollInterval) * time.Millisecond
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	reclaimInterval := time.Duration(cfg.Queue.VisibilityTimeout) * time.Second
	if reclaimInterval <= 0 {
		reclaimInterval = 30 * time.Second
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		pollTicker := time.NewTicker(pollInterval)
		defer pollTicker.Stop()
		reclaimTicker := time.NewTicker(reclaimInterval)
		defer reclaimTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollTicker.C:
				if _, err := handler.PollOnce(ctx); err != nil && ctx.Err() == nil {
					zapLog.Error("poll failed", zap.Error(err))
				}
			case <-reclaimTicker.C:
				n, err := requestQueue.Reclaim(ctx)
				if err != nil && ctx.Err() == nil {
					zapLog.Error("reclaim failed", zap.Error(err))
				} else if n > 0 {
					zapLog.Info("reclaimed expired deliveries", zap.Int("count", n))
				}
			}
		}
	}()

	zapLog.Info("Suggestion worker polling",
		zap.String("queue", cfg.Queue.Name),
		zap.Duration("pollInterval", pollInterval),
	)

	// --- Health/Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Worker.MetricsAddress))
		if err := http.ListenAndServe(cfg.Worker.MetricsAddress, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping worker...")
	cancel()
	wg.Wait()

	zapLog.Info("Suggestion worker stopped gracefully")
}
