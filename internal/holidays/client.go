package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultBaseURL = "https://calendarific.com/api/v2"
	cacheTTL       = 35 * 24 * time.Hour
)

// Client fetches public-holiday dates for a country and year. Responses are
// cached in redis so repeated plan runs do not hit the upstream API.
type Client struct {
	httpClient *http.Client
	cache      *redis.Client
	apiKey     string
	baseURL    string
}

func NewClient(cache *redis.Client, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
}

type holidaysResponse struct {
	Response struct {
		Holidays []struct {
			Name string `json:"name"`
			Date struct {
				ISO string `json:"iso"`
			} `json:"date"`
		} `json:"holidays"`
	} `json:"response"`
}

func cacheKey(country string, year int) string {
	return fmt.Sprintf("holidays:%s:%d", country, year)
}

// HolidayDates returns the set of holiday dates (ISO YYYY-MM-DD) for the
// given country and year, serving from cache when possible.
func (c *Client) HolidayDates(ctx context.Context, country string, year int) (map[string]struct{}, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey(country, year)).Result()
		if err == nil {
			var dates []string
			if jsonErr := json.Unmarshal([]byte(cached), &dates); jsonErr == nil {
				return toSet(dates), nil
			}
		} else if err != redis.Nil {
			log.Printf("holidays: cache read failed for %s/%d: %v", country, year, err)
		}
	}

	return c.Refresh(ctx, country, year)
}

// Refresh fetches the year from the upstream API and overwrites the cache
// entry regardless of its current state.
func (c *Client) Refresh(ctx context.Context, country string, year int) (map[string]struct{}, error) {
	dates, err := c.fetch(ctx, country, year)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		encoded, jsonErr := json.Marshal(dates)
		if jsonErr == nil {
			if err := c.cache.Set(ctx, cacheKey(country, year), encoded, cacheTTL).Err(); err != nil {
				log.Printf("holidays: cache write failed for %s/%d: %v", country, year, err)
			}
		}
	}

	return toSet(dates), nil
}

func (c *Client) fetch(ctx context.Context, country string, year int) ([]string, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("country", country)
	params.Set("year", fmt.Sprintf("%d", year))
	params.Set("type", "national")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/holidays?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holidays request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays for %s/%d: %w", country, year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("holidays API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed holidaysResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode holidays response: %w", err)
	}

	dates := make([]string, 0, len(parsed.Response.Holidays))
	for _, h := range parsed.Response.Holidays {
		iso := h.Date.ISO
		// Some entries carry a full timestamp; only the date part matters.
		if len(iso) > 10 {
			iso = iso[:10]
		}
		if iso != "" {
			dates = append(dates, iso)
		}
	}

	return dates, nil
}

func toSet(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}
