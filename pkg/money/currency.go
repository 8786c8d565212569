package money

import "regexp"

var currencyCodeRE = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidCurrencyCode reports whether s is a 3-letter uppercase code.
// Codes are compared, never converted: a group fixes one base currency
// and every transaction in it must match.
func ValidCurrencyCode(s string) bool {
	return currencyCodeRE.MatchString(s)
}
