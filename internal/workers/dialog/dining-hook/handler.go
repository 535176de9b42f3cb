// internal/workers/dialog/dining-hook/handler.go
package dininghook

import (
	"context"
	"fmt"
	"strings"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/common/queue"
	"dining-concierge/internal/models"
)

const (
	ComponentName = "dining-hook"
)

const (
	greetingMessage = "Hello! How can I assist you today?"
	thanksMessage   = "You're welcome!"
	fallbackMessage = "Sorry, I didn't catch that."
)

// Handler drives one turn of the dining dialog: slot validation and
// elicitation during the Validate phase, request hand-off during Finalize.
// It holds no per-session state; everything it needs arrives on the event.
type Handler struct {
	config *Config
	queue  queue.RequestQueue
	logger logger.Logger
}

func NewHandler(config *Config, q queue.RequestQueue, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		queue:  q,
		logger: log.WithFields(map[string]interface{}{
			"component": ComponentName,
		}),
	}
}

// ProcessTurn evaluates a dialog event and returns the next directive. It
// never fails: downstream errors during Finalize are logged and counted, and
// the turn still closes as fulfilled.
func (h *Handler) ProcessTurn(ctx context.Context, event *models.DialogEvent) *models.DialogTurnResult {
	result := h.processTurn(ctx, event)
	metrics.DialogTurns.WithLabelValues(event.IntentName, result.Directive).Inc()
	return result
}

func (h *Handler) processTurn(ctx context.Context, event *models.DialogEvent) *models.DialogTurnResult {
	switch event.IntentName {
	case models.IntentGreeting:
		return closeTurn(greetingMessage, models.StateFulfilled, event.Slots)
	case models.IntentThankYou:
		return closeTurn(thanksMessage, models.StateFulfilled, event.Slots)
	case models.IntentDiningSuggestions:
		if event.Phase == models.PhaseFinalize {
			return h.finalize(ctx, event)
		}
		return h.validateTurn(event)
	default:
		h.logger.Warn("unrecognized intent", map[string]interface{}{
			"intent":    event.IntentName,
			"sessionId": event.SessionID,
		})
		return closeTurn(fallbackMessage, models.StateFulfilled, event.Slots)
	}
}

// validateTurn runs slot validation in priority order, then the completeness
// check in the same order. An invalid slot is cleared before re-eliciting so
// a repeated bad answer cannot satisfy the completeness pass.
func (h *Handler) validateTurn(event *models.DialogEvent) *models.DialogTurnResult {
	slots := event.Slots.Clone()

	if name, msg, found := findInvalidSlot(slots); found {
		h.logger.Info("slot validation failed", map[string]interface{}{
			"slot":      name,
			"sessionId": event.SessionID,
		})
		return elicitTurn(name, msg, slots.With(name, ""))
	}

	if name := slots.FirstUnfilled(); name != "" {
		return elicitTurn(name, slotPrompts[name], slots)
	}

	return &models.DialogTurnResult{
		Directive: models.DirectiveDelegate,
		Slots:     slots,
	}
}

// finalize builds the validated request, hands it to the queue, and closes
// the conversation. An enqueue failure is an operational problem, not the
// user's: it is logged and counted, and the turn still reports success.
func (h *Handler) finalize(ctx context.Context, event *models.DialogEvent) *models.DialogTurnResult {
	slots := event.Slots

	req := &models.ValidatedRequest{
		Cuisine:        strings.ToLower(slots.Get(models.SlotCuisine)),
		Location:       slots.Get(models.SlotLocation),
		NumberOfPeople: slots.Get(models.SlotNumberOfPeople),
		DiningTime:     slots.Get(models.SlotDiningTime),
		ContactAddress: slots.Get(models.SlotContactAddress),
		SessionID:      event.SessionID,
	}
	attrs := models.MessageAttributes{
		Intent:  models.IntentDiningSuggestions,
		Cuisine: req.Cuisine,
	}

	enqueueCtx, cancel := context.WithTimeout(ctx, h.config.EnqueueTimeout)
	defer cancel()

	if err := h.queue.Enqueue(enqueueCtx, req, attrs); err != nil {
		metrics.EnqueueFailures.Inc()
		h.logger.WithError(err).Error("request enqueue failed", map[string]interface{}{
			"sessionId": event.SessionID,
			"cuisine":   req.Cuisine,
		})
	} else {
		h.logger.Info("request enqueued", map[string]interface{}{
			"sessionId": event.SessionID,
			"cuisine":   req.Cuisine,
		})
	}

	confirm := fmt.Sprintf(
		"Got it! I'll send you %s restaurant suggestions in %s for %s people at %s. Expect an email soon!",
		titleWord(req.Cuisine), req.Location, req.NumberOfPeople, req.DiningTime,
	)
	return closeTurn(confirm, models.StateFulfilled, slots)
}

func elicitTurn(slot, message string, slots models.SlotSet) *models.DialogTurnResult {
	return &models.DialogTurnResult{
		Directive:    models.DirectiveElicitSlot,
		SlotToElicit: slot,
		Message:      message,
		Slots:        slots,
	}
}

func closeTurn(message, state string, slots models.SlotSet) *models.DialogTurnResult {
	return &models.DialogTurnResult{
		Directive:        models.DirectiveClose,
		Message:          message,
		FulfillmentState: state,
		Slots:            slots,
	}
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
