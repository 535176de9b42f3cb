// internal/gateway/interpreter.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dining-concierge/internal/common/config"
	httpclient "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// Interpretation is what the NLU service makes of one utterance.
type Interpretation struct {
	Intent string         `json:"intent"`
	Slots  models.SlotSet `json:"slots"`
}

// Interpreter turns free text into an intent plus slot values. The NLU
// behind it is a black box to this service.
type Interpreter interface {
	Interpret(ctx context.Context, sessionID, text string) (*Interpretation, error)
}

// HTTPInterpreter calls a configured NLU endpoint.
type HTTPInterpreter struct {
	endpoint string
	apiKey   string
	client   *httpclient.Client
	logger   logger.Logger
}

func NewHTTPInterpreter(cfg config.GatewayConfig, client *httpclient.Client, log logger.Logger) *HTTPInterpreter {
	return &HTTPInterpreter{
		endpoint: cfg.NLU.Endpoint,
		apiKey:   cfg.NLU.APIKey,
		client:   client,
		logger:   log.WithFields(map[string]interface{}{"component": "nlu-interpreter"}),
	}
}

func (i *HTTPInterpreter) Interpret(ctx context.Context, sessionID, text string) (*Interpretation, error) {
	payload, _ := json.Marshal(map[string]string{
		"sessionId": sessionID,
		"text":      text,
	})

	req, err := http.NewRequest(http.MethodPost, i.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build nlu request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if i.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+i.apiKey)
	}

	resp, err := i.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("nlu request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nlu status %d", resp.StatusCode)
	}

	var out Interpretation
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode nlu response: %w", err)
	}
	return &out, nil
}
