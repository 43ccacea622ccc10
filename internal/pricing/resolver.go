// Package pricing implements the variant price resolver. Resolution is a pure
// function of its inputs so the same rule can run on the product page, in the
// cart service, and inside payment verification without drift.
package pricing

import (
	"math"
	"time"
)

// DiscountPercentage is the only discount kind currently supported.
const DiscountPercentage = "percentage"

// SaleDescriptor describes a time-boxed discount attached to a product.
// A nil start or end leaves that side of the window unbounded.
type SaleDescriptor struct {
	Enabled       bool       `json:"enabled"`
	DiscountType  string     `json:"discountType"`
	DiscountValue float64    `json:"discountValue"`
	StartsAt      *time.Time `json:"startsAt,omitempty"`
	EndsAt        *time.Time `json:"endsAt,omitempty"`
}

// IsSaleActive reports whether the sale applies at the given instant.
// A window whose start is after its end is never active.
func IsSaleActive(sale *SaleDescriptor, now time.Time) bool {
	if sale == nil || !sale.Enabled {
		return false
	}
	if sale.StartsAt != nil && sale.EndsAt != nil && sale.StartsAt.After(*sale.EndsAt) {
		return false
	}
	if sale.StartsAt != nil && now.Before(*sale.StartsAt) {
		return false
	}
	if sale.EndsAt != nil && now.After(*sale.EndsAt) {
		return false
	}
	return true
}

// Resolve derives the unit price for a variant: base price scaled by the
// density multiplier, then reduced by an active sale. A density missing from
// the multiplier table means multiplier 1.0; a product may omit the table
// entirely for single-density items. Discounted prices are rounded to whole
// naira, the same precision shown to the shopper and charged at checkout.
func Resolve(basePrice float64, density string, multipliers map[string]float64, sale *SaleDescriptor, now time.Time) float64 {
	multiplier := 1.0
	if m, ok := multipliers[density]; ok && m > 0 {
		multiplier = m
	}

	price := basePrice * multiplier

	if !IsSaleActive(sale, now) {
		return price
	}

	if sale.DiscountType == DiscountPercentage {
		// Out-of-range discount values are a configuration error; clamp
		// rather than produce a negative or inflated price.
		discount := sale.DiscountValue
		if discount < 0 {
			discount = 0
		}
		if discount > 100 {
			discount = 100
		}
		price = math.Round(price * (1 - discount/100))
	}

	return price
}
