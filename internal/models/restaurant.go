// internal/models/restaurant.go
package models

import "time"

// ShadowRecord holds the minimal display fields captured from a search hit.
// It is the fallback when the record store has no entry for a business.
type ShadowRecord struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CandidateSet is the deduplicated result of a cuisine search. IDs preserve
// first-seen order; Shadows maps each id to its shadow record.
type CandidateSet struct {
	IDs     []string
	Shadows map[string]ShadowRecord
}

// Size returns the number of distinct candidates.
func (c CandidateSet) Size() int {
	return len(c.IDs)
}

// Restaurant is the full record held by the enrichment store. Rows are
// append-only: a business may have many rows, newest InsertedAt wins.
type Restaurant struct {
	BusinessID  string    `json:"businessId"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Cuisine     string    `json:"cuisine"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	InsertedAt  time.Time `json:"insertedAt"`
}

// Recommendation is one line of the suggestion digest.
type Recommendation struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
