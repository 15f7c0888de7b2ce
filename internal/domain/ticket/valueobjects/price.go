package valueobjects

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var priceReplacer = strings.NewReplacer("$", "", ",", "")

// NormalizePriceText strips currency symbols, thousands separators and
// surrounding whitespace from a price cell.
func NormalizePriceText(raw string) string {
	return strings.TrimSpace(priceReplacer.Replace(strings.TrimSpace(raw)))
}

// ParsePrice parses normalized price text. Empty text, text that is not a
// decimal number, NaN and infinities are errors. Negative values parse
// successfully; callers decide whether to accept them.
func ParsePrice(text string) (float64, error) {
	if text == "" {
		return 0, fmt.Errorf("price is empty")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("price %q is not a finite number", text)
	}
	return v, nil
}
