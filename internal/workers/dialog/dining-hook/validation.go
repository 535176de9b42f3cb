// internal/workers/dialog/dining-hook/validation.go
package dininghook

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dining-concierge/internal/models"
)

var validCuisines = map[string]struct{}{
	"chinese":  {},
	"indian":   {},
	"italian":  {},
	"japanese": {},
	"thai":     {},
	"mexican":  {},
}

var (
	diningTimeRE = regexp.MustCompile(`^([0-1]?\d|2[0-3]):[0-5]\d$`)
	emailRE      = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// slotPrompts are the questions asked when a slot has no value yet.
var slotPrompts = map[string]string{
	models.SlotLocation:       "Where do you want to eat?",
	models.SlotCuisine:        "What cuisine would you like?",
	models.SlotNumberOfPeople: "How many people are dining?",
	models.SlotDiningTime:     "At what time? (HH:MM, 24h format)",
	models.SlotContactAddress: "What email should I send your suggestions to?",
}

// validateSlot checks a non-empty slot value. When the value is invalid it
// returns the corrective message to re-ask with.
func validateSlot(name, value string) (string, bool) {
	switch name {
	case models.SlotLocation:
		if !strings.EqualFold(value, "manhattan") {
			return "Currently, we only support restaurant suggestions in Manhattan.", false
		}
	case models.SlotCuisine:
		if _, ok := validCuisines[strings.ToLower(value)]; !ok {
			return fmt.Sprintf("We do not support %s cuisine yet. How about trying Italian instead?", value), false
		}
	case models.SlotNumberOfPeople:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n >= 30 {
			return "Please provide a number of people between 1 and 30.", false
		}
	case models.SlotDiningTime:
		if !diningTimeRE.MatchString(value) {
			return "Please provide a valid time in HH:MM format (e.g., 19:30).", false
		}
	case models.SlotContactAddress:
		if !emailRE.MatchString(value) {
			return "Please provide a valid email address.", false
		}
	}
	return "", true
}

// findInvalidSlot walks the slots in their fixed priority order and reports
// the first one that has a value that fails validation.
func findInvalidSlot(slots models.SlotSet) (string, string, bool) {
	for _, name := range models.SlotOrder {
		value := slots.Get(name)
		if value == "" {
			continue
		}
		if msg, ok := validateSlot(name, value); !ok {
			return name, msg, true
		}
	}
	return "", "", false
}
