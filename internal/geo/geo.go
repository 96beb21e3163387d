package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPGetter is the slice of pkg/clients the lookup needs.
type HTTPGetter interface {
	Get(url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error)
}

// Client resolves an IP address to a country code, best effort. It runs as a
// detached task and never blocks the postback response.
type Client struct {
	client  HTTPGetter
	address string
}

func New(client HTTPGetter, address string) *Client {
	return &Client{
		client:  client,
		address: address,
	}
}

type lookupResponse struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
}

func (c *Client) Lookup(ctx context.Context, ip string) (string, error) {
	if c.address == "" || ip == "" {
		return "", fmt.Errorf("geo lookup not configured")
	}

	status, body, _, err := c.client.Get(c.address+"/"+ip, nil)
	if err != nil {
		return "", fmt.Errorf("can't reach geo service: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("geo service responded with status %d", status)
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("can't parse geo response: %w", err)
	}
	if resp.Status != "success" || resp.CountryCode == "" {
		return "", fmt.Errorf("geo lookup failed for %s", ip)
	}
	return resp.CountryCode, nil
}
