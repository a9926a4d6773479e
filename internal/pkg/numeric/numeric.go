// Package numeric holds the lenient coercion rules for numbers that arrive
// as free text: form fields, LLM output, and extracted document data. The
// contract is parse-to-nil on garbage, never an error.
package numeric

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var leadingIntPattern = regexp.MustCompile(`\d+`)

// ParsePrice parses a price arriving as text ("1500", "$1,200.50", "1200 USD").
// Returns nil when no usable number can be extracted.
func ParsePrice(s string) *float64 {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return nil
	}
	cleaned = strings.NewReplacer("$", "", ",", "", " ", "").Replace(cleaned)

	// Drop a trailing currency code if one got glued on.
	end := len(cleaned)
	for end > 0 {
		c := cleaned[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	cleaned = cleaned[:end]
	if cleaned == "" {
		return nil
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseCount parses a non-negative integer count from text; nil on anything else.
func ParseCount(s string) *int32 {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseInt(cleaned, 10, 32)
	if err != nil || v < 0 {
		return nil
	}
	count := int32(v)
	return &count
}

// LeadingInt extracts the first integer appearing in a free-form string
// ("5-7 días hábiles" -> 5). The unit is whatever the author meant.
func LeadingInt(s string) (int, bool) {
	match := leadingIntPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return v, true
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a price for report display: "$1,000" for whole
// amounts, "$1,000.50" otherwise.
func FormatMoney(v float64) string {
	if v == math.Trunc(v) {
		return moneyPrinter.Sprintf("$%.0f", v)
	}
	return moneyPrinter.Sprintf("$%.2f", v)
}
