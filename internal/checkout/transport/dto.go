package transport

// VerifyPaymentRequest carries the client's claim about a completed payment:
// the processor reference handed back by the payment popup and the order total
// in naira. Both are claims to be checked against the processor's own record,
// never trusted.
type VerifyPaymentRequest struct {
	Reference string  `json:"reference" validate:"required,max=128"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// VerifyPaymentResponse deliberately says nothing about amounts or the reason
// a verification failed. Detail lives in the server logs.
type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SummaryResponse struct {
	Subtotal        float64 `json:"subtotal"`
	ShippingFee     float64 `json:"shippingFee"`
	Total           float64 `json:"total"`
	TotalDisplay    string  `json:"totalDisplay"`
	AmountKobo      int64   `json:"amountKobo"`
	ItemCount       int     `json:"itemCount"`
	SubtotalDisplay string  `json:"subtotalDisplay"`
	ShippingDisplay string  `json:"shippingDisplay"`
}
