package transport

// Products

type ListProductsRequest struct {
	Category string `form:"category" validate:"omitempty,max=100"`
	Tag      string `form:"tag" validate:"omitempty,max=100"`
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// VariantPrice is the resolved display price for one density tier.
type VariantPrice struct {
	Density       string  `json:"density"`
	UnitPrice     float64 `json:"unitPrice"`
	Display       string  `json:"display"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	OnSale        bool    `json:"onSale"`
}

type SaleResponse struct {
	DiscountValue float64 `json:"discountValue"`
	EndsAt        string  `json:"endsAt,omitempty"`
}

type ProductResponse struct {
	Code               string         `json:"code"`
	Slug               string         `json:"slug"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	Category           string         `json:"category"`
	Tags               []string       `json:"tags"`
	BasePrice          float64        `json:"basePrice"`
	BaseLength         int            `json:"baseLength"`
	Material           string         `json:"material"`
	Texture            string         `json:"texture"`
	Color              string         `json:"color"`
	AvailableLengths   []int          `json:"availableLengths"`
	AvailableDensities []string       `json:"availableDensities"`
	Prices             []VariantPrice `json:"prices"`
	Sale               *SaleResponse  `json:"sale,omitempty"`
	Images             []string       `json:"images"`
	Stock              int            `json:"stock"`
	LowStock           bool           `json:"lowStock"`
	Rating             float64        `json:"rating"`
	ReviewCount        int            `json:"reviewCount"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
