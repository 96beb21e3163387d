package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// IsCardNumber reports whether s is a plausible payment card number. Users
// paste numbers with spaces or dashes, so separators are stripped before the
// Luhn check.
func IsCardNumber(s string) bool {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	if s == "" {
		return false
	}
	return goluhn.Validate(s) == nil
}
