package partner

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

var (
	ErrUnknownPartner   = errors.New("unknown partner")
	ErrMissingParam     = errors.New("missing required parameter")
	ErrInvalidPayout    = errors.New("invalid payout value")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Mapping names the query parameters a partner uses in its postbacks. Each
// offerwall has its own convention; adding a partner is a table entry plus a
// configured secret, not new code.
type Mapping struct {
	UserID     string
	ExternalID string
	Payout     string
	OfferID    string
	OfferName  string
}

var mappings = map[string]Mapping{
	"lootably": {UserID: "userID", ExternalID: "transactionID", Payout: "revenue", OfferID: "offerID", OfferName: "offerName"},
	"adgem":    {UserID: "player_id", ExternalID: "transaction_id", Payout: "amount", OfferID: "offer_id", OfferName: "offer_name"},
	"ayet":     {UserID: "external_identifier", ExternalID: "transaction_id", Payout: "payout_usd", OfferID: "offer_id", OfferName: "offer_name"},
	"cpx":      {UserID: "user_id", ExternalID: "trans_id", Payout: "amount_usd", OfferID: "offer_id"},
}

type Partner struct {
	Slug       string
	Mapping    Mapping
	Secret     string
	Multiplier float64
}

// Callback is a normalized postback. PayoutCents is the raw partner-reported
// payout converted to cents, before the partner multiplier.
type Callback struct {
	UserID      int
	ExternalID  string
	PayoutCents int64
	OfferID     string
	OfferName   string
}

// Registry holds the active partners. A partner is active only when its slug
// has both a mapping entry and a configured HMAC secret.
type Registry struct {
	partners map[string]Partner
}

func NewRegistry(secrets map[string]string, multipliers map[string]float64) *Registry {
	partners := make(map[string]Partner)
	for slug, mapping := range mappings {
		secret, ok := secrets[slug]
		if !ok || secret == "" {
			continue
		}
		mult := 1.0
		if m, ok := multipliers[slug]; ok {
			mult = m
		}
		partners[slug] = Partner{
			Slug:       slug,
			Mapping:    mapping,
			Secret:     secret,
			Multiplier: mult,
		}
	}
	return &Registry{partners: partners}
}

func (r *Registry) Get(slug string) (Partner, error) {
	p, ok := r.partners[slug]
	if !ok {
		return Partner{}, fmt.Errorf("%w: %s", ErrUnknownPartner, slug)
	}
	return p, nil
}

// Normalize extracts and validates the partner-specific parameters. It does
// not verify the signature; call Verify first.
func (p Partner) Normalize(params url.Values) (*Callback, error) {
	userIDRaw := params.Get(p.Mapping.UserID)
	externalID := params.Get(p.Mapping.ExternalID)
	payoutRaw := params.Get(p.Mapping.Payout)
	if userIDRaw == "" || externalID == "" || payoutRaw == "" {
		return nil, fmt.Errorf("%w: need %s, %s, %s", ErrMissingParam, p.Mapping.UserID, p.Mapping.ExternalID, p.Mapping.Payout)
	}

	userID, err := strconv.Atoi(userIDRaw)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: %s=%q", ErrMissingParam, p.Mapping.UserID, userIDRaw)
	}

	payoutCents, err := ParseCents(payoutRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidPayout, p.Mapping.Payout, payoutRaw)
	}

	cb := &Callback{
		UserID:      userID,
		ExternalID:  externalID,
		PayoutCents: payoutCents,
	}
	if p.Mapping.OfferID != "" {
		cb.OfferID = params.Get(p.Mapping.OfferID)
	}
	if p.Mapping.OfferName != "" {
		cb.OfferName = params.Get(p.Mapping.OfferName)
	}
	return cb, nil
}

// MaxPayoutCents caps a single conversion. Real offers stay far below this;
// anything above it is a partner-side bug.
const MaxPayoutCents int64 = 100_000_00

// ParseCents parses a decimal payout string into cents. strconv.ParseFloat
// accepts "Inf" and "NaN", and the float-to-int64 conversion is undefined for
// them, so non-finite values and anything beyond MaxPayoutCents are rejected
// here rather than left to overflow downstream.
func ParseCents(raw string) (int64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v*100 > float64(MaxPayoutCents) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPayout, raw)
	}
	return ToCents(v), nil
}

// ToCents converts decimal currency units to integer cents, rounding half away
// from zero. Truncation would silently under-pay.
func ToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// MultipliedPayout applies the partner payout multiplier, rounded once to the
// nearest cent. The rounded result is what every downstream consumer
// (ledger, leaderboard, referral commission) sees. The result is clamped to
// MaxPayoutCents so a misconfigured multiplier cannot blow past the per-
// conversion cap.
func (p Partner) MultipliedPayout(rawCents int64) int64 {
	cents := int64(math.Round(float64(rawCents) * p.Multiplier))
	if cents > MaxPayoutCents {
		return MaxPayoutCents
	}
	return cents
}
