// internal/workers/suggestions/send-digest/composer.go
package senddigest

import (
	"fmt"
	"strings"

	"dining-concierge/internal/models"
)

const (
	placeholderName    = "Unknown"
	placeholderAddress = "Address unavailable"
)

// Subject builds the digest subject line.
func Subject(cuisineTC, location string) string {
	return fmt.Sprintf("%s restaurants in %s", cuisineTC, location)
}

// Compose renders the digest body. The output is fully determined by its
// inputs: same request plus same recommendations means the same text, which
// is what makes duplicate queue deliveries harmless.
func Compose(cuisineTC, numPeople, diningTime string, recs []models.Recommendation) string {
	if numPeople == "" {
		numPeople = "N/A"
	}
	if diningTime == "" {
		diningTime = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello! Here are my %s restaurant suggestions for %s people, for today at %s:\n",
		cuisineTC, numPeople, diningTime)

	if len(recs) == 0 {
		b.WriteString("Sorry, I couldn't find matching restaurants right now.")
	} else {
		lines := make([]string, 0, len(recs))
		for i, r := range recs {
			name := r.Name
			if name == "" {
				name = placeholderName
			}
			address := r.Address
			if address == "" {
				address = placeholderAddress
			}
			lines = append(lines, fmt.Sprintf("%d. %s, located at %s", i+1, name, address))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\nEnjoy your meal!")
	return b.String()
}
