// internal/workers/suggestions/find-restaurants/models.go
package findrestaurants

// searchResponse mirrors the slice of the search reply this worker reads.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				BusinessID string `json:"business_id"`
				Name       string `json:"name"`
				Address    string `json:"address"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
