package partner

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRegistry() *Registry {
	return NewRegistry(
		map[string]string{"lootably": "secret-a", "adgem": "secret-b"},
		map[string]float64{"adgem": 1.5},
	)
}

func TestRegistry_Get(t *testing.T) {
	registry := testRegistry()

	tests := []struct {
		name        string
		slug        string
		expectErr   error
		expectMult  float64
		expectSlug  string
	}{
		{
			name:       "Known partner with default multiplier",
			slug:       "lootably",
			expectMult: 1.0,
			expectSlug: "lootably",
		},
		{
			name:       "Known partner with configured multiplier",
			slug:       "adgem",
			expectMult: 1.5,
			expectSlug: "adgem",
		},
		{
			name:      "Unknown slug",
			slug:      "doesnotexist",
			expectErr: ErrUnknownPartner,
		},
		{
			name:      "Mapped partner without configured secret",
			slug:      "cpx",
			expectErr: ErrUnknownPartner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := registry.Get(tt.slug)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectSlug, p.Slug)
			assert.Equal(t, tt.expectMult, p.Multiplier)
		})
	}
}

func TestPartner_Normalize(t *testing.T) {
	registry := testRegistry()
	lootably, err := registry.Get("lootably")
	assert.NoError(t, err)

	tests := []struct {
		name      string
		params    url.Values
		expectErr error
		expected  *Callback
	}{
		{
			name: "Valid callback",
			params: url.Values{
				"userID":        {"7"},
				"transactionID": {"tx-1001"},
				"revenue":       {"2.50"},
				"offerID":       {"9004"},
				"offerName":     {"Coin Blast"},
			},
			expected: &Callback{
				UserID:      7,
				ExternalID:  "tx-1001",
				PayoutCents: 250,
				OfferID:     "9004",
				OfferName:   "Coin Blast",
			},
		},
		{
			name: "Missing external id",
			params: url.Values{
				"userID":  {"7"},
				"revenue": {"2.50"},
			},
			expectErr: ErrMissingParam,
		},
		{
			name: "Non-numeric user id",
			params: url.Values{
				"userID":        {"bob"},
				"transactionID": {"tx-1001"},
				"revenue":       {"2.50"},
			},
			expectErr: ErrMissingParam,
		},
		{
			name: "Non-numeric payout",
			params: url.Values{
				"userID":        {"7"},
				"transactionID": {"tx-1001"},
				"revenue":       {"two dollars"},
			},
			expectErr: ErrInvalidPayout,
		},
		{
			name: "Negative payout",
			params: url.Values{
				"userID":        {"7"},
				"transactionID": {"tx-1001"},
				"revenue":       {"-1.00"},
			},
			expectErr: ErrInvalidPayout,
		},
		{
			name: "Infinite payout",
			params: url.Values{
				"userID":        {"7"},
				"transactionID": {"tx-1001"},
				"revenue":       {"Inf"},
			},
			expectErr: ErrInvalidPayout,
		},
		{
			name: "Signed infinite payout",
			params: url.Values{
				"userID":        {"7"},
				"transactionID": {"tx-1001"},
				"revenue":       {"+Inf"},
			},
			expectErr: ErrInvalidPayout,
		},
		{
			name: "NaN payout",
			params: url.Values{
				"userID":        {"7"},
				"transactionID": {"tx-1001"},
				"revenue":       {"NaN"},
			},
			expectErr: ErrInvalidPayout,
		},
		{
			name: "Payout beyond the per-conversion cap",
			params: url.Values{
				"userID":        {"7"},
				"transactionID": {"tx-1001"},
				"revenue":       {"1e18"},
			},
			expectErr: ErrInvalidPayout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, err := lootably.Normalize(tt.params)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, cb)
		})
	}
}

func TestNormalizeErrorsAreDistinguishable(t *testing.T) {
	registry := testRegistry()
	lootably, _ := registry.Get("lootably")

	_, err := lootably.Normalize(url.Values{"userID": {"7"}})
	assert.ErrorIs(t, err, ErrMissingParam)
	assert.False(t, errors.Is(err, ErrInvalidSignature))
}

func TestToCents(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int64
	}{
		{name: "Exact cents", input: 2.50, expected: 250},
		{name: "Rounds half up", input: 0.005, expected: 1},
		{name: "Rounds down below half", input: 0.004, expected: 0},
		{name: "Large value", input: 123.456, expected: 12346},
		{name: "Zero", input: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToCents(tt.input))
		})
	}
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		raw      string
		expected int64
		ok       bool
	}{
		{raw: "2.50", expected: 250, ok: true},
		{raw: "0", expected: 0, ok: true},
		{raw: "0.005", expected: 1, ok: true},
		{raw: "Inf", ok: false},
		{raw: "-Inf", ok: false},
		{raw: "NaN", ok: false},
		{raw: "1e18", ok: false},
		{raw: "-0.01", ok: false},
		{raw: "two dollars", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCents(tt.raw)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidPayout)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMultipliedPayout(t *testing.T) {
	tests := []struct {
		name       string
		multiplier float64
		rawCents   int64
		expected   int64
	}{
		{name: "Identity multiplier", multiplier: 1.0, rawCents: 1000, expected: 1000},
		{name: "One and a half", multiplier: 1.5, rawCents: 1000, expected: 1500},
		{name: "Rounds to nearest cent", multiplier: 1.5, rawCents: 333, expected: 500},
		{name: "Below one", multiplier: 0.7, rawCents: 100, expected: 70},
		{name: "Clamped to the cap", multiplier: 1000000, rawCents: 1000000, expected: MaxPayoutCents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Partner{Multiplier: tt.multiplier}
			assert.Equal(t, tt.expected, p.MultipliedPayout(tt.rawCents))
		})
	}
}
