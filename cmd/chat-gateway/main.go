// cmd/chat-gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	httpclient "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/common/queue"
	"dining-concierge/internal/gateway"

	dh "dining-concierge/internal/workers/dialog/dining-hook"
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

	zapLog.Info("Starting chat gateway...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("chat-gateway")
	defer obs.Shutdown()

	ctx := context.Background()

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

	// --- Wire Gateway Components ---
	requestQueue := queue.NewRedisQueue(redis.Client, cfg.Queue, log)
	engine := dh.NewHandler(dh.LoadConfig(), requestQueue, log)

	sessionTTL := time.Duration(cfg.Gateway.SessionTTL) * time.Second
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	sessions := gateway.NewSessionStore(redis, sessionTTL, log)

	nluTimeout := time.Duration(cfg.Gateway.NLU.Timeout) * time.Millisecond
	if nluTimeout <= 0 {
		nluTimeout = 5 * time.Second
	}
	nlu := gateway.NewHTTPInterpreter(cfg.Gateway, httpclient.NewClient(nluTimeout), log)

	server := gateway.NewServer(cfg.Gateway, engine, sessions, nlu, log)

	addr := cfg.Gateway.ListenAddress
	if addr == "" {
		addr = ":8080"
	}
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		zapLog.Info("Chat gateway listening", zap.String("address", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping gateway...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("Chat gateway stopped gracefully")
}
