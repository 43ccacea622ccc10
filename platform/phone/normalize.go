// Package phone normalizes customer phone numbers.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without a country prefix are assumed Nigerian.
const defaultRegion = "NG"

// NormalizeE164 converts a phone number to E.164 form. Input that cannot be
// parsed as a valid number comes back trimmed but otherwise untouched.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
