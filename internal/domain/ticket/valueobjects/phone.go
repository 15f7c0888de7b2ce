package valueobjects

import (
	"fmt"
	"strings"
)

// DefaultAreaCode is prepended to seven-digit local numbers when no area
// code is configured.
const DefaultAreaCode = "704"

// NormalizePhone formats raw as "(AAA) PPP-NNNN". Seven digits get
// areaCode prepended, eleven digits with a leading 1 lose the country
// code. Anything else is returned trimmed but otherwise unchanged.
func NormalizePhone(raw, areaCode string) string {
	trimmed := strings.TrimSpace(raw)
	digits := onlyDigits(trimmed)

	if areaCode == "" {
		areaCode = DefaultAreaCode
	}

	switch {
	case len(digits) == 7 && len(onlyDigits(areaCode)) == 3:
		digits = onlyDigits(areaCode) + digits
	case len(digits) == 11 && digits[0] == '1':
		digits = digits[1:]
	}

	if len(digits) != 10 {
		return trimmed
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
