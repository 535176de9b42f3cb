// internal/workers/dialog/dining-hook/validation_test.go
package dininghook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dining-concierge/internal/models"
)

func TestValidateSlotLocation(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"Manhattan", true},
		{"manhattan", true},
		{"MANHATTAN", true},
		{"Brooklyn", false},
		{"Queens", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			msg, ok := validateSlot(models.SlotLocation, tt.value)
			assert.Equal(t, tt.valid, ok)
			if !tt.valid {
				assert.Contains(t, msg, "Manhattan")
			}
		})
	}
}

func TestValidateSlotCuisine(t *testing.T) {
	for _, cuisine := range []string{"chinese", "indian", "italian", "japanese", "thai", "mexican"} {
		_, ok := validateSlot(models.SlotCuisine, cuisine)
		assert.True(t, ok, cuisine)
	}

	// Case-insensitive acceptance.
	_, ok := validateSlot(models.SlotCuisine, "Italian")
	assert.True(t, ok)

	msg, ok := validateSlot(models.SlotCuisine, "korean")
	assert.False(t, ok)
	assert.Equal(t, "We do not support korean cuisine yet. How about trying Italian instead?", msg)
}

func TestValidateSlotNumberOfPeople(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"1", true},
		{"29", true},
		{"0", false},
		{"30", false},
		{"-3", false},
		{"abc", false},
		{"2.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, ok := validateSlot(models.SlotNumberOfPeople, tt.value)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestValidateSlotDiningTime(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"9:30", true},
		{"19:30", true},
		{"24:00", false},
		{"9:60", false},
		{"930", false},
		{"7pm", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, ok := validateSlot(models.SlotDiningTime, tt.value)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestValidateSlotContactAddress(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"diner@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"diner@", false},
		{"diner@example", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, ok := validateSlot(models.SlotContactAddress, tt.value)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestFindInvalidSlotOrder(t *testing.T) {
	// Both Location and DiningTime are bad; Location wins because it comes
	// first in priority order.
	slots := models.SlotSet{
		models.SlotLocation:   "Brooklyn",
		models.SlotDiningTime: "24:00",
	}

	name, _, found := findInvalidSlot(slots)
	assert.True(t, found)
	assert.Equal(t, models.SlotLocation, name)
}

func TestFindInvalidSlotIgnoresEmpty(t *testing.T) {
	slots := models.SlotSet{
		models.SlotLocation: "",
		models.SlotCuisine:  "italian",
	}

	_, _, found := findInvalidSlot(slots)
	assert.False(t, found)
}
