// internal/workers/suggestions/send-digest/composer_test.go
package senddigest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dining-concierge/internal/models"
)

func TestComposeWithRecommendations(t *testing.T) {
	recs := []models.Recommendation{
		{Name: "Trattoria Uno", Address: "1 Mulberry St"},
		{Name: "Osteria Due", Address: "2 Mott St"},
		{Name: "Cucina Tre", Address: "3 Spring St"},
	}

	body := Compose("Italian", "4", "19:30", recs)

	expected := "Hello! Here are my Italian restaurant suggestions for 4 people, for today at 19:30:\n" +
		"1. Trattoria Uno, located at 1 Mulberry St\n" +
		"2. Osteria Due, located at 2 Mott St\n" +
		"3. Cucina Tre, located at 3 Spring St" +
		"\n\nEnjoy your meal!"
	assert.Equal(t, expected, body)
}

func TestComposeEmptyRecommendations(t *testing.T) {
	body := Compose("Korean", "2", "18:00", nil)

	expected := "Hello! Here are my Korean restaurant suggestions for 2 people, for today at 18:00:\n" +
		"Sorry, I couldn't find matching restaurants right now." +
		"\n\nEnjoy your meal!"
	assert.Equal(t, expected, body)
}

func TestComposeAppliesPlaceholders(t *testing.T) {
	recs := []models.Recommendation{
		{Name: "", Address: ""},
	}

	body := Compose("Thai", "2", "20:00", recs)

	assert.Contains(t, body, "1. Unknown, located at Address unavailable")
}

func TestComposeDefaultsMissingFields(t *testing.T) {
	body := Compose("Thai", "", "", nil)

	assert.Contains(t, body, "for N/A people, for today at N/A:")
}

func TestComposeIsDeterministic(t *testing.T) {
	recs := []models.Recommendation{
		{Name: "A", Address: "1st St"},
		{Name: "B", Address: "2nd St"},
	}

	assert.Equal(t,
		Compose("Italian", "4", "19:30", recs),
		Compose("Italian", "4", "19:30", recs))
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Italian restaurants in Manhattan", Subject("Italian", "Manhattan"))
}
