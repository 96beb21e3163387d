package partner

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// SignatureParam is the query parameter carrying the HMAC on every partner
// postback. It is excluded from the signed canonical string.
const SignatureParam = "sig"

// CanonicalString joins all parameters except the signature itself as
// "key=value&key=value", sorted lexicographically by key.
func CanonicalString(params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		if key == SignatureParam {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params.Get(key))
	}
	return strings.Join(pairs, "&")
}

func Sign(canonical, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the postback HMAC in constant time. A missing signature is the
// same hard rejection as a wrong one.
func (p Partner) Verify(params url.Values) error {
	got := params.Get(SignatureParam)
	if got == "" {
		return fmt.Errorf("%w: signature missing", ErrInvalidSignature)
	}

	want := Sign(CanonicalString(params), p.Secret)
	if !hmac.Equal([]byte(strings.ToLower(got)), []byte(want)) {
		return ErrInvalidSignature
	}
	return nil
}
