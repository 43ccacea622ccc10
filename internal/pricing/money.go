package pricing

import (
	"math"
	"strconv"
	"strings"
)

// ToKobo converts a naira amount to the smallest currency unit the processor
// speaks. This is the single conversion rule for the whole system: the amount
// submitted to the payment widget and the amount re-derived during
// verification must both pass through it, or legitimate payments would be
// rejected as mismatches.
func ToKobo(ngn float64) int64 {
	return int64(math.Round(ngn * 100))
}

// FormatNGN formats a naira amount as a display string like "₦35,000".
// Amounts are shown without kobo; the storefront prices in whole naira.
func FormatNGN(amount float64) string {
	rounded := int64(math.Round(amount))
	neg := rounded < 0
	if neg {
		rounded = -rounded
	}

	s := strconv.FormatInt(rounded, 10)
	if len(s) <= 3 {
		if neg {
			return "-₦" + s
		}
		return "₦" + s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 4)
	if neg {
		b.WriteString("-₦")
	} else {
		b.WriteString("₦")
	}

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	return b.String()
}
