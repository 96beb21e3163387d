package everflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GlebRadaev/offermart/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(addr string) *Client {
	client := New(addr, "test-key", cache.New[[]Offer](time.Minute, 16), cache.New[string](time.Minute, 64))
	client.http.RetryMax = 0
	return client
}

func TestClient_Offers(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/affiliates/offersrunnable", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Eflow-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"offers":[
			{"network_offer_id":9,"name":"Survey","payout":1.5,"preview_url":"https://example.com/9","offer_visibility":"public"},
			{"network_offer_id":10,"name":"Internal QA","payout":0.1,"preview_url":"","offer_visibility":"private"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	offers, err := client.Offers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, Offer{NetworkOfferID: 9, Name: "Survey", Payout: 1.5, PreviewURL: "https://example.com/9", Visibility: "public"}, offers[0])

	// Second call is served from the cache.
	offers, err = client.Offers(context.Background())
	require.NoError(t, err)
	assert.Len(t, offers, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Offers_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	offers, err := newTestClient(server.URL).Offers(context.Background())
	assert.ErrorContains(t, err, "status 403")
	assert.Nil(t, offers)
}

func TestClient_Offers_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Offers(context.Background())
	assert.ErrorContains(t, err, "can't parse offers response")
}

func TestClient_TrackingLink(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/affiliates/tracking/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(9), req["network_offer_id"])
		assert.Equal(t, "1", req["sub1"])

		_, _ = w.Write([]byte(`{"url":"https://track.example.com/c?sub1=1"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	link, err := client.TrackingLink(context.Background(), 9, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://track.example.com/c?sub1=1", link)

	// Same (offer, user) pair hits the cache.
	link, err = client.TrackingLink(context.Background(), 9, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://track.example.com/c?sub1=1", link)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_TrackingLink_EmptyURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"url":""}`))
	}))
	defer server.Close()

	link, err := newTestClient(server.URL).TrackingLink(context.Background(), 9, 1)
	assert.ErrorContains(t, err, "empty tracking link")
	assert.Empty(t, link)
}
