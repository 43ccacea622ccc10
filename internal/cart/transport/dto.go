package transport

// AddItemRequest adds a product variant to the cart. The unit price is never
// accepted from the client: the service resolves it from the catalog and
// freezes it on the line.
type AddItemRequest struct {
	ProductCode string `json:"productCode" validate:"required,max=32"`
	Length      int    `json:"length" validate:"required,min=1"`
	Density     string `json:"density" validate:"required,max=16"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type LineResponse struct {
	VariantID   string  `json:"variantId"`
	ProductCode string  `json:"productCode"`
	Name        string  `json:"name"`
	Length      int     `json:"length"`
	Density     string  `json:"density"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"lineTotal"`
}

type CartResponse struct {
	Lines           []LineResponse `json:"lines"`
	ItemCount       int            `json:"itemCount"`
	Subtotal        float64        `json:"subtotal"`
	SubtotalDisplay string         `json:"subtotalDisplay"`
}
