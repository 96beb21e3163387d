package everflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GlebRadaev/offermart/pkg/cache"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Client talks to the Everflow affiliate API. Offer and tracking-link
// responses are cached with a short TTL; the cache is injected so tests can
// control it and so its lifetime is owned by the caller, not this package.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
	offers  *cache.Cache[[]Offer]
	links   *cache.Cache[string]
}

type Offer struct {
	NetworkOfferID int     `json:"network_offer_id"`
	Name           string  `json:"name"`
	Payout         float64 `json:"payout"`
	PreviewURL     string  `json:"preview_url"`
	Visibility     string  `json:"offer_visibility"`
}

func New(baseURL, apiKey string, offers *cache.Cache[[]Offer], links *cache.Cache[string]) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &Client{
		http:    client,
		baseURL: baseURL,
		apiKey:  apiKey,
		offers:  offers,
		links:   links,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("can't marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("can't build request: %w", err)
	}
	req.Header.Set("X-Eflow-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("everflow request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read everflow response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("everflow responded with status %d", resp.StatusCode)
	}
	return respBody, nil
}

// Offers lists the runnable offers for the affiliate, cached.
func (c *Client) Offers(ctx context.Context) ([]Offer, error) {
	if offers, ok := c.offers.Get("offers"); ok {
		return offers, nil
	}

	body, err := c.do(ctx, http.MethodGet, "/v1/affiliates/offersrunnable", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Offers []Offer `json:"offers"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("can't parse offers response: %w", err)
	}

	c.offers.Set("offers", resp.Offers)
	zap.L().Debug("everflow offers refreshed", zap.Int("count", len(resp.Offers)))
	return resp.Offers, nil
}

// TrackingLink generates (or returns the cached) per-user tracking URL for an
// offer, with the user id carried in sub1 so conversions can be attributed.
func (c *Client) TrackingLink(ctx context.Context, offerID, userID int) (string, error) {
	key := fmt.Sprintf("link:%d:%d", offerID, userID)
	if link, ok := c.links.Get(key); ok {
		return link, nil
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/affiliates/tracking/generate", map[string]any{
		"network_offer_id": offerID,
		"sub1":             fmt.Sprintf("%d", userID),
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("can't parse tracking link response: %w", err)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("everflow returned an empty tracking link")
	}

	c.links.Set(key, resp.URL)
	return resp.URL, nil
}
