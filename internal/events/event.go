// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"storefront_backend/platform/events"
	"storefront_backend/platform/logger"
)

// Aliases into platform/events so modules only import this package.
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus constructs the default in-process bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Checkout Domain Events
// =============================================================================

// OrderLine is a snapshot of a cart line at the moment an order was verified.
type OrderLine struct {
	VariantID   string  `json:"variantId"`
	ProductCode string  `json:"productCode"`
	Name        string  `json:"name"`
	Length      int     `json:"length"`
	Density     string  `json:"density"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

// OrderVerified is published when the payment processor confirmed both the
// transaction status and the charged amount. This event is the only trigger
// for fulfillment side effects (confirmation email, stock decrement).
type OrderVerified struct {
	BaseEvent
	Reference     string      `json:"reference"`
	AmountKobo    int64       `json:"amountKobo"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Lines         []OrderLine `json:"lines"`
}

func (e OrderVerified) EventName() string { return "checkout.order.verified" }

// PaymentRejected is published when verification failed closed: the processor
// record contradicted the client claim. Carried for audit subscribers only;
// no fulfillment side effect may hang off this event.
type PaymentRejected struct {
	BaseEvent
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

func (e PaymentRejected) EventName() string { return "checkout.payment.rejected" }
