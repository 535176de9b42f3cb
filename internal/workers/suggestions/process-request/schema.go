// internal/workers/suggestions/process-request/schema.go
package processrequest

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// requestSchema is the shape a queued request must satisfy before this
// worker touches it. Only cuisine and sessionId are hard requirements; the
// rest degrade to placeholders downstream.
var requestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"cuisine", "sessionId"},
	"properties": map[string]interface{}{
		"cuisine":        map[string]interface{}{"type": "string", "minLength": 1},
		"location":       map[string]interface{}{"type": "string"},
		"numberOfPeople": map[string]interface{}{"type": "string"},
		"diningTime":     map[string]interface{}{"type": "string"},
		"contactAddress": map[string]interface{}{"type": "string"},
		"sessionId":      map[string]interface{}{"type": "string"},
	},
}

// validatePayload checks a raw queue body against the request schema.
func validatePayload(body []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(requestSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("payload not parseable: %v", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("payload invalid: %s", strings.Join(msgs, "; "))
	}
	return nil
}
