// internal/models/dialog.go
package models

// Intent names emitted by the NLU front end.
const (
	IntentDiningSuggestions = "DiningSuggestionsIntent"
	IntentGreeting          = "GreetingIntent"
	IntentThankYou          = "ThankYouIntent"
)

// Invocation phases for the slot-filling intent.
const (
	PhaseValidate = "Validate"
	PhaseFinalize = "Finalize"
)

// Dialog directives returned to the caller.
const (
	DirectiveElicitSlot = "ElicitSlot"
	DirectiveDelegate   = "Delegate"
	DirectiveClose      = "Close"
)

// Fulfillment states carried by a Close directive.
const (
	StateFulfilled = "Fulfilled"
	StateFailed    = "Failed"
)

// DialogEvent is one inbound dialog turn: the recognized intent, the
// invocation phase, and the slot values collected so far.
type DialogEvent struct {
	IntentName string  `json:"intentName"`
	Phase      string  `json:"invocationPhase"`
	Slots      SlotSet `json:"slotValues"`
	SessionID  string  `json:"sessionId"`
}

// DialogTurnResult is the outcome of one dialog turn. Exactly one directive
// is set per turn; Slots always carries the updated slot set to round-trip
// through the caller.
type DialogTurnResult struct {
	Directive        string  `json:"dialogDirective"`
	SlotToElicit     string  `json:"slotToElicit,omitempty"`
	Message          string  `json:"responseText,omitempty"`
	FulfillmentState string  `json:"fulfillmentState,omitempty"`
	Slots            SlotSet `json:"updatedSlots"`
}
