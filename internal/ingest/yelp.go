// internal/ingest/yelp.go
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	httpclient "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
)

const (
	yelpPageLimit = 50   // max businesses per Yelp search page
	yelpOffsetCap = 1000 // Yelp rejects offsets past this
)

var ErrYelpSearchFailed = errors.New("YELP_SEARCH_FAILED")

// YelpBusiness is the slice of the Yelp search response we keep.
type YelpBusiness struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Phone       string  `json:"phone"`
	Location    struct {
		DisplayAddress []string `json:"display_address"`
		ZipCode        string   `json:"zip_code"`
	} `json:"location"`
	Categories []struct {
		Title string `json:"title"`
	} `json:"categories"`
}

// Address joins the display address lines the way the digest expects.
func (b YelpBusiness) Address() string {
	addr := ""
	for i, line := range b.Location.DisplayAddress {
		if i > 0 {
			addr += " "
		}
		addr += line
	}
	return addr
}

type yelpSearchResponse struct {
	Businesses []YelpBusiness `json:"businesses"`
	Total      int            `json:"total"`
}

// YelpClient pages through the Yelp business search API.
type YelpClient struct {
	baseURL    string
	apiKey     string
	client     *httpclient.Client
	pageDelay  time.Duration
	retryDelay time.Duration
	logger     logger.Logger
}

func NewYelpClient(baseURL, apiKey string, client *httpclient.Client, log logger.Logger) *YelpClient {
	return &YelpClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		client:     client,
		pageDelay:  300 * time.Millisecond,
		retryDelay: 5 * time.Second,
		logger:     log,
	}
}

// SearchBusinesses fetches up to needed distinct businesses for a search term.
// Rate-limit responses pause and retry the same page; any other non-200 stops
// the crawl and returns what was collected so far.
func (c *YelpClient) SearchBusinesses(ctx context.Context, term, location string, needed int) ([]YelpBusiness, error) {
	seen := make(map[string]struct{})
	var out []YelpBusiness

	offset := 0
	for len(out) < needed && offset < yelpOffsetCap {
		page, err := c.searchPage(ctx, term, location, offset)
		if err != nil {
			if errors.Is(err, errYelpRateLimited) {
				c.logger.Warn("yelp rate-limited, backing off", map[string]interface{}{
					"term":  term,
					"delay": c.retryDelay.String(),
				})
				if sleepErr := sleepCtx(ctx, c.retryDelay); sleepErr != nil {
					return out, sleepErr
				}
				continue
			}
			if len(out) > 0 {
				c.logger.Error("yelp search aborted mid-crawl", map[string]interface{}{
					"term":      term,
					"collected": len(out),
					"error":     err.Error(),
				})
				return out, nil
			}
			return nil, err
		}

		if len(page) == 0 {
			break
		}
		for _, b := range page {
			if b.ID == "" {
				continue
			}
			if _, dup := seen[b.ID]; dup {
				continue
			}
			seen[b.ID] = struct{}{}
			out = append(out, b)
		}

		offset += yelpPageLimit
		if err := sleepCtx(ctx, c.pageDelay); err != nil {
			return out, err
		}
	}

	if len(out) > needed {
		out = out[:needed]
	}
	return out, nil
}

var errYelpRateLimited = errors.New("yelp rate limited")

func (c *YelpClient) searchPage(ctx context.Context, term, location string, offset int) ([]YelpBusiness, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("location", location)
	params.Set("limit", fmt.Sprintf("%d", yelpPageLimit))
	params.Set("offset", fmt.Sprintf("%d", offset))

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/businesses/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrYelpSearchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrYelpSearchFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests {
		return nil, errYelpRateLimited
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrYelpSearchFailed, res.StatusCode)
	}

	var parsed yelpSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrYelpSearchFailed, err)
	}
	return parsed.Businesses, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
