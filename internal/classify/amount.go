package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// amountRe matches a monetary-looking token: optional dollar sign,
// digits, optional decimal part, optional one-letter magnitude suffix.
var amountRe = regexp.MustCompile(`(?i)\$?(\d+(?:\.\d+)?)([kmb]?)`)

// ExtractAmount returns the first monetary magnitude found in text,
// scaled by its k/m/b suffix. Only the first match in reading order
// counts; multiple figures are never aggregated. No match returns 0.
func ExtractAmount(text string) float64 {
	m := amountRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	switch strings.ToLower(m[2]) {
	case "k":
		v *= 1_000
	case "m":
		v *= 1_000_000
	case "b":
		v *= 1_000_000_000
	}
	return v
}
