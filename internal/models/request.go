// internal/models/request.go
package models

// ValidatedRequest is the immutable handoff value built by the dialog engine
// once all five slots pass validation. It is the exact shape serialized onto
// the request queue; NumberOfPeople stays a string end to end.
type ValidatedRequest struct {
	Cuisine        string `json:"cuisine"`
	Location       string `json:"location"`
	NumberOfPeople string `json:"numberOfPeople"`
	DiningTime     string `json:"diningTime"`
	ContactAddress string `json:"contactAddress"`
	SessionID      string `json:"sessionId"`
}

// MessageAttributes tag a queued request for filtering and observability
// without parsing the body.
type MessageAttributes struct {
	Intent  string `json:"intent"`
	Cuisine string `json:"cuisine"`
}
