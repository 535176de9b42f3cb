// internal/workers/suggestions/process-request/handler.go
package processrequest

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/common/queue"
	"dining-concierge/internal/models"
	findrestaurants "dining-concierge/internal/workers/suggestions/find-restaurants"
	senddigest "dining-concierge/internal/workers/suggestions/send-digest"
)

const (
	ComponentName = "process-request"
)

// CandidateResolver finds restaurant candidates for a cuisine.
type CandidateResolver interface {
	FindCandidates(ctx context.Context, cuisine string) models.CandidateSet
}

// RecordStore looks up the authoritative restaurant record.
type RecordStore interface {
	Latest(ctx context.Context, businessID string) (*models.Restaurant, error)
}

// DigestDispatcher delivers a composed digest and reports the outcome.
type DigestDispatcher interface {
	Dispatch(ctx context.Context, recipient, subject, body string) string
}

// Handler consumes validated dining requests and turns each one into a
// suggestion digest. Processing is read-only plus one send, so a duplicate
// delivery costs a duplicate email at worst, never corrupt state.
type Handler struct {
	config     *Config
	queue      queue.RequestQueue
	resolver   CandidateResolver
	store      RecordStore
	dispatcher DigestDispatcher
	rng        *rand.Rand
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(
	config *Config,
	q queue.RequestQueue,
	resolver CandidateResolver,
	store RecordStore,
	dispatcher DigestDispatcher,
	rng *rand.Rand,
	log logger.Logger,
) *Handler {
	scoped := log.WithFields(map[string]interface{}{"component": ComponentName})
	return &Handler{
		config:     config,
		queue:      q,
		resolver:   resolver,
		store:      store,
		dispatcher: dispatcher,
		rng:        rng,
		errHandler: errors.NewErrorHandler(scoped),
		logger:     scoped,
	}
}

// ProcessDelivery handles one queued request end to end: schema check,
// candidate search, sampling, enrichment, compose, dispatch. Search misses
// and record-store errors degrade; only a malformed payload is an error.
func (h *Handler) ProcessDelivery(ctx context.Context, d queue.Delivery) error {
	start := time.Now()
	err := h.processDelivery(ctx, d)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.MessagesProcessed.WithLabelValues(outcome).Inc()
	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	return err
}

func (h *Handler) processDelivery(ctx context.Context, d queue.Delivery) error {
	if err := validatePayload(d.Body); err != nil {
		return errors.NewMalformedMessageError(err.Error())
	}

	var req models.ValidatedRequest
	if err := json.Unmarshal(d.Body, &req); err != nil {
		return errors.NewMalformedMessageError(err.Error())
	}

	h.logger.Info("processing request", map[string]interface{}{
		"deliveryToken": d.Token,
		"attempt":       d.Attempt,
		"sessionId":     req.SessionID,
		"cuisine":       req.Cuisine,
	})

	cuisineTC := titleWord(req.Cuisine)
	location := titleLocation(req.Location)

	set := h.resolver.FindCandidates(ctx, req.Cuisine)
	picks := findrestaurants.Sample(set, h.config.SampleSize, h.rng)

	recs := make([]models.Recommendation, 0, len(picks))
	for _, bid := range picks {
		recs = append(recs, h.enrich(ctx, bid, set.Shadows[bid]))
	}

	subject := senddigest.Subject(cuisineTC, location)
	body := senddigest.Compose(cuisineTC, req.NumberOfPeople, req.DiningTime, recs)
	status := h.dispatcher.Dispatch(ctx, req.ContactAddress, subject, body)

	h.logger.Info("request processed", map[string]interface{}{
		"sessionId":       req.SessionID,
		"cuisine":         cuisineTC,
		"candidates":      set.Size(),
		"recommendations": len(recs),
		"dispatchStatus":  status,
	})
	return nil
}

// enrich resolves display fields for one pick: record store first, search
// shadow as fallback. A lookup error is a miss, not a failure.
func (h *Handler) enrich(ctx context.Context, businessID string, shadow models.ShadowRecord) models.Recommendation {
	rec, err := h.store.Latest(ctx, businessID)
	if err != nil {
		h.logger.WithError(err).Warn("record lookup failed, using shadow", map[string]interface{}{
			"businessId": businessID,
		})
	}

	name, address := shadow.Name, shadow.Address
	if rec != nil {
		if rec.Name != "" {
			name = rec.Name
		}
		if rec.Address != "" {
			address = rec.Address
		}
	}
	return models.Recommendation{Name: name, Address: address}
}

// HandleBatch is the push path: the broker delivered these and owns their
// lifecycle, so there is nothing to ack. One bad message never stops its
// siblings.
func (h *Handler) HandleBatch(ctx context.Context, deliveries []queue.Delivery) {
	for _, d := range deliveries {
		msgCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
		err := h.ProcessDelivery(msgCtx, d)
		cancel()

		if err != nil {
			if h.errHandler.HandleMessageError(d.Token, sessionID(d.Body), err) == errors.Abandon {
				metrics.MessagesAbandoned.Inc()
			}
		}
	}
}

// PollOnce is the poll path: one bounded, non-blocking sweep of the queue.
// A delivery is acknowledged only after processing succeeds, or when the
// failure is terminal; otherwise it stays claimed until Reclaim returns it.
func (h *Handler) PollOnce(ctx context.Context) (int, error) {
	deliveries, err := h.queue.Dequeue(ctx, h.config.BatchSize, 0)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, d := range deliveries {
		msgCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
		err := h.ProcessDelivery(msgCtx, d)
		cancel()

		if err == nil {
			h.ack(ctx, d)
			processed++
			continue
		}

		if h.errHandler.HandleMessageError(d.Token, sessionID(d.Body), err) == errors.Abandon {
			metrics.MessagesAbandoned.Inc()
			h.ack(ctx, d)
		}
	}
	return processed, nil
}

func (h *Handler) ack(ctx context.Context, d queue.Delivery) {
	if err := h.queue.Ack(ctx, d); err != nil {
		h.logger.WithError(err).Error("ack failed", map[string]interface{}{
			"deliveryToken": d.Token,
		})
	}
}

func sessionID(body []byte) string {
	var probe struct {
		SessionID string `json:"sessionId"`
	}
	_ = json.Unmarshal(body, &probe)
	return probe.SessionID
}

func titleWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// titleLocation title-cases each word, defaulting to Manhattan when the
// request carried no location.
func titleLocation(loc string) string {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return "Manhattan"
	}
	words := strings.Fields(strings.ToLower(loc))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
