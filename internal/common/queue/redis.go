// internal/common/queue/redis.go
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// dequeuePollInterval bounds how often a waiting Dequeue re-checks the list.
const dequeuePollInterval = 100 * time.Millisecond

// RedisQueue implements RequestQueue on a Redis list pair: a ready list fed
// by Enqueue and a processing list holding claimed deliveries, with claim
// timestamps in a hash keyed by delivery token.
type RedisQueue struct {
	client            *redis.Client
	readyKey          string
	processingKey     string
	claimsKey         string
	visibilityTimeout time.Duration
	maxAttempts       int
	logger            logger.Logger
}

// NewRedisQueue creates a queue over an existing Redis client.
func NewRedisQueue(client *redis.Client, cfg config.QueueConfig, log logger.Logger) *RedisQueue {
	return &RedisQueue{
		client:            client,
		readyKey:          cfg.Name,
		processingKey:     cfg.Name + ":processing",
		claimsKey:         cfg.Name + ":claims",
		visibilityTimeout: time.Duration(cfg.VisibilityTimeout) * time.Second,
		maxAttempts:       cfg.MaxAttempts,
		logger:            log.WithFields(map[string]interface{}{"queue": cfg.Name}),
	}
}

// Enqueue serializes the request into an envelope and pushes it onto the
// ready list.
func (q *RedisQueue) Enqueue(ctx context.Context, req *models.ValidatedRequest, attrs models.MessageAttributes) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("queue enqueue: marshal request: %w", err)
	}

	env := envelope{
		Token:      uuid.New().String(),
		Attempt:    1,
		EnqueuedAt: time.Now().UTC(),
		Attributes: attrs,
		Body:       body,
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("queue enqueue: marshal envelope: %w", err)
	}

	if err := q.client.LPush(ctx, q.readyKey, string(raw)).Err(); err != nil {
		return fmt.Errorf("queue enqueue: %w", err)
	}
	return nil
}

// Dequeue claims up to maxN messages. With wait == 0 it is a single
// non-blocking sweep; otherwise it polls until the deadline for the first
// message, then drains whatever else is immediately available.
func (q *RedisQueue) Dequeue(ctx context.Context, maxN int, wait time.Duration) ([]Delivery, error) {
	deadline := time.Now().Add(wait)
	var out []Delivery

	for len(out) < maxN {
		raw, err := q.client.LMove(ctx, q.readyKey, q.processingKey, "RIGHT", "LEFT").Result()
		if err == redis.Nil {
			if len(out) > 0 || wait <= 0 || !time.Now().Before(deadline) {
				break
			}
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(dequeuePollInterval):
			}
			continue
		}
		if err != nil {
			return out, fmt.Errorf("queue dequeue: %w", err)
		}

		var env envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			// Not one of ours; drop it so it cannot wedge the list.
			q.logger.Error("dropping unparseable envelope", map[string]interface{}{"error": err.Error()})
			q.client.LRem(ctx, q.processingKey, 1, raw)
			continue
		}

		if err := q.client.HSet(ctx, q.claimsKey, env.Token, time.Now().Unix()).Err(); err != nil {
			q.logger.Warn("claim timestamp write failed", map[string]interface{}{
				"token": env.Token,
				"error": err.Error(),
			})
		}

		out = append(out, Delivery{
			Token:      env.Token,
			Body:       env.Body,
			Attributes: env.Attributes,
			Attempt:    env.Attempt,
			raw:        raw,
		})
	}

	return out, nil
}

// Ack removes the delivery from the processing list and clears its claim.
func (q *RedisQueue) Ack(ctx context.Context, d Delivery) error {
	pipe := q.client.TxPipeline()
	pipe.LRem(ctx, q.processingKey, 1, d.raw)
	pipe.HDel(ctx, q.claimsKey, d.Token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("queue ack: %w", err)
	}
	return nil
}

// Reclaim scans the processing list for claims older than the visibility
// timeout and returns them to the ready list with an incremented attempt
// count. Messages past the attempt budget are dropped.
func (q *RedisQueue) Reclaim(ctx context.Context) (int, error) {
	entries, err := q.client.LRange(ctx, q.processingKey, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("queue reclaim: %w", err)
	}

	requeued := 0
	now := time.Now()

	for _, raw := range entries {
		var env envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			q.client.LRem(ctx, q.processingKey, 1, raw)
			continue
		}

		claimedAt, err := q.client.HGet(ctx, q.claimsKey, env.Token).Result()
		if err == nil {
			ts, parseErr := strconv.ParseInt(claimedAt, 10, 64)
			if parseErr == nil && now.Sub(time.Unix(ts, 0)) < q.visibilityTimeout {
				continue // still within its visibility window
			}
		}
		// Missing claim counts as expired: the consumer died mid-dequeue.

		if env.Attempt >= q.maxAttempts {
			q.logger.Warn("dropping message past attempt budget", map[string]interface{}{
				"token":    env.Token,
				"attempts": env.Attempt,
				"cuisine":  env.Attributes.Cuisine,
			})
			pipe := q.client.TxPipeline()
			pipe.LRem(ctx, q.processingKey, 1, raw)
			pipe.HDel(ctx, q.claimsKey, env.Token)
			_, _ = pipe.Exec(ctx)
			continue
		}

		env.Attempt++
		next, err := json.Marshal(env)
		if err != nil {
			continue
		}

		pipe := q.client.TxPipeline()
		pipe.LRem(ctx, q.processingKey, 1, raw)
		pipe.HDel(ctx, q.claimsKey, env.Token)
		pipe.RPush(ctx, q.readyKey, string(next))
		if _, err := pipe.Exec(ctx); err != nil {
			q.logger.Error("reclaim requeue failed", map[string]interface{}{
				"token": env.Token,
				"error": err.Error(),
			})
			continue
		}
		requeued++
	}

	return requeued, nil
}
