package repository

import (
	"context"

	"storefront_backend/internal/pricing"
)

// Product is an immutable catalog record. Prices are in naira; density
// multipliers scale the base price per density tier. Length is a display
// attribute only and never affects price.
type Product struct {
	Code               string
	Slug               string
	Name               string
	Description        string
	Category           string
	Tags               []string
	BasePrice          float64
	BaseLength         int
	Material           string
	Texture            string
	Color              string
	AvailableLengths   []int
	AvailableDensities []string
	PriceMultipliers   map[string]float64
	Sale               *pricing.SaleDescriptor
	Images             []string
	Stock              int
	LowStockThreshold  int
	Rating             float64
	ReviewCount        int
}

// HasVariant reports whether the given length and density are offered.
func (p Product) HasVariant(length int, density string) bool {
	lengthOK := false
	for _, l := range p.AvailableLengths {
		if l == length {
			lengthOK = true
			break
		}
	}
	if !lengthOK {
		return false
	}
	for _, d := range p.AvailableDensities {
		if d == density {
			return true
		}
	}
	return false
}

// ListParams filters the product listing.
type ListParams struct {
	Category string
	Tag      string
	Search   string
	Offset   int
	Limit    int
}

// Repository is the catalog data access contract.
type Repository interface {
	List(ctx context.Context, params ListParams) ([]Product, int, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	GetByCode(ctx context.Context, code string) (Product, error)
	DecrementStock(ctx context.Context, code string, quantity int) error
}
