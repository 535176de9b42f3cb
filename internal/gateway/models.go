// internal/gateway/models.go
package gateway

// ChatMessage is one entry of the chat envelope exchanged with the frontend.
type ChatMessage struct {
	Type         string       `json:"type"`
	Unstructured Unstructured `json:"unstructured"`
}

type Unstructured struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatRequest accepts both the nested messages envelope and the flat
// {"text": ...} shape.
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	Text      string        `json:"text"`
	SessionID string        `json:"sessionId"`
}

// UserText extracts the message text, preferring the nested envelope.
func (r *ChatRequest) UserText() string {
	if len(r.Messages) > 0 && r.Messages[0].Unstructured.Text != "" {
		return r.Messages[0].Unstructured.Text
	}
	return r.Text
}

// ChatResponse is the reply envelope returned to the frontend.
type ChatResponse struct {
	SessionID string        `json:"sessionId"`
	Messages  []ChatMessage `json:"messages"`
}

func replyEnvelope(sessionID, text, timestamp string) ChatResponse {
	return ChatResponse{
		SessionID: sessionID,
		Messages: []ChatMessage{
			{
				Type: "unstructured",
				Unstructured: Unstructured{
					ID:        "1",
					Text:      text,
					Timestamp: timestamp,
				},
			},
		},
	}
}
