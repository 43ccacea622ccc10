// Package domain holds the cart ledger: the in-memory collection of lines for
// one shopper session. The ledger has a single logical writer (the session's
// own requests), so it carries no locking; persistence across requests is the
// store's concern.
package domain

import (
	"fmt"
	"math"

	"storefront_backend/platform/apperr"
)

// Line is one cart entry for a specific product variant. UnitPrice is frozen
// at the moment the line was created: it is the price the shopper was shown,
// not a live reference into the catalog.
type Line struct {
	VariantID   string  `json:"variantId"`
	ProductCode string  `json:"productCode"`
	Name        string  `json:"name"`
	Length      int     `json:"length"`
	Density     string  `json:"density"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

// Cart is the ledger of lines for one session.
type Cart struct {
	Lines []Line `json:"lines"`
}

// VariantID derives the unique line key for a product variant. Two lines in
// one cart never share a variant ID.
func VariantID(productCode string, length int, density string) string {
	return fmt.Sprintf("%s-%d-%s", productCode, length, density)
}

// AddLine merges the given variant into the ledger. If a line with the same
// variant identity exists its quantity is incremented and its unit price left
// untouched (first-add price sticks); otherwise a new line is appended.
// Invalid quantities and non-positive or non-numeric prices are rejected
// outright: a corrupt line would poison every total derived from it.
func (c *Cart) AddLine(line Line) error {
	if line.Quantity < 1 {
		return apperr.Validation("quantity must be at least 1")
	}
	if math.IsNaN(line.UnitPrice) || line.UnitPrice <= 0 {
		return apperr.Validation("unit price must be a positive number")
	}

	for i := range c.Lines {
		if c.Lines[i].VariantID == line.VariantID {
			c.Lines[i].Quantity += line.Quantity
			return nil
		}
	}

	c.Lines = append(c.Lines, line)
	return nil
}

// UpdateQuantity replaces a line's quantity. Zero removes the line; a negative
// value leaves the cart unchanged. Updating an absent variant is a no-op.
func (c *Cart) UpdateQuantity(variantID string, quantity int) {
	if quantity < 0 {
		return
	}
	if quantity == 0 {
		c.RemoveLine(variantID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].VariantID == variantID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveLine deletes the matching line. Removal is idempotent: an absent
// variant is not an error.
func (c *Cart) RemoveLine(variantID string) {
	for i := range c.Lines {
		if c.Lines[i].VariantID == variantID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Subtotal sums unitPrice × quantity over all lines. A line whose price is
// not a number contributes 0 so a single corrupt line cannot corrupt the
// whole total.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.Lines {
		price := line.UnitPrice
		if math.IsNaN(price) {
			price = 0
		}
		total += price * float64(line.Quantity)
	}
	return total
}

// Clear empties the ledger. Called only after a verified payment, never
// speculatively.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the ledger has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
