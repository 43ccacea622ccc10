// Package service implements checkout totals and payment verification.
//
// Verification fails closed: a payment counts as verified only when the
// processor's own record confirms both the transaction status and the exact
// charged amount. Everything else, including any upstream failure, leaves the
// cart untouched and triggers no fulfillment.
package service

import (
	"context"
	"time"

	"storefront_backend/internal/cart/domain"
	catalogrepo "storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/checkout/client"
	"storefront_backend/internal/checkout/transport"
	"storefront_backend/internal/events"
	"storefront_backend/internal/pricing"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/phone"
)

// processorStatusSuccess is the transaction status Paystack reports for a
// completed charge. Any other value is a rejection.
const processorStatusSuccess = "success"

const (
	msgVerified    = "payment verified"
	msgNotVerified = "payment could not be verified"
	reasonAmount   = "amount mismatch"
	reasonNotPaid  = "transaction not successful"
)

// Processor is the payment processor lookup the verification flow depends on.
type Processor interface {
	VerifyTransaction(ctx context.Context, reference string) (*client.VerifyResponse, error)
}

// CartAccess is the slice of the cart service checkout needs: reading the
// ledger for totals and clearing it after a verified payment.
type CartAccess interface {
	Cart(ctx context.Context, sessionID string) (domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type Service struct {
	processor Processor
	carts     CartAccess
	catalog   catalogrepo.Repository
	bus       events.Bus
	cfg       config.CheckoutConfig
	log       *logger.Logger
}

func NewService(processor Processor, carts CartAccess, catalog catalogrepo.Repository, bus events.Bus, cfg config.CheckoutConfig, log *logger.Logger) *Service {
	return &Service{
		processor: processor,
		carts:     carts,
		catalog:   catalog,
		bus:       bus,
		cfg:       cfg,
		log:       log,
	}
}

// Summary aggregates the session's order total. The kobo amount is derived
// here, in one place, by the same conversion the verifier uses; no other code
// path multiplies naira by 100.
func (s *Service) Summary(ctx context.Context, sessionID string) (*transport.SummaryResponse, error) {
	const op = "checkout.Summary"

	cart, err := s.carts.Cart(ctx, sessionID)
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}

	subtotal := cart.Subtotal()
	var shipping float64
	if !cart.IsEmpty() {
		shipping = s.cfg.GetShippingFeeNGN()
	}
	total := subtotal + shipping

	count := 0
	for _, l := range cart.Lines {
		count += l.Quantity
	}

	return &transport.SummaryResponse{
		Subtotal:        subtotal,
		ShippingFee:     shipping,
		Total:           total,
		TotalDisplay:    pricing.FormatNGN(total),
		AmountKobo:      pricing.ToKobo(total),
		ItemCount:       count,
		SubtotalDisplay: pricing.FormatNGN(subtotal),
		ShippingDisplay: pricing.FormatNGN(shipping),
	}, nil
}

// VerifyPayment checks the client's payment claim against the processor's
// record. The response carries only a generic outcome; amounts and reasons go
// to the server log. A non-nil error means the processor could not be
// consulted at all, which the handler reports as a server-side failure.
func (s *Service) VerifyPayment(ctx context.Context, sessionID string, req transport.VerifyPaymentRequest) (*transport.VerifyPaymentResponse, error) {
	const op = "checkout.VerifyPayment"

	expectedKobo := pricing.ToKobo(req.Amount)

	record, err := s.processor.VerifyTransaction(ctx, req.Reference)
	if err != nil {
		s.log.GatewayError(req.Reference, err)
		return nil, apperr.WithOp(op, err)
	}

	recordedKobo := record.Data.Amount
	processorStatus := record.Data.Status

	if processorStatus != processorStatusSuccess {
		s.log.PaymentRejected(req.Reference, reasonNotPaid, expectedKobo, recordedKobo, processorStatus)
		s.bus.Publish(ctx, events.PaymentRejected{
			BaseEvent: events.NewBaseEvent(),
			Reference: req.Reference,
			Reason:    reasonNotPaid,
		})
		return &transport.VerifyPaymentResponse{Success: false, Message: msgNotVerified}, nil
	}

	if recordedKobo != expectedKobo {
		s.log.PaymentRejected(req.Reference, reasonAmount, expectedKobo, recordedKobo, processorStatus)
		s.bus.Publish(ctx, events.PaymentRejected{
			BaseEvent: events.NewBaseEvent(),
			Reference: req.Reference,
			Reason:    reasonAmount,
		})
		return &transport.VerifyPaymentResponse{Success: false, Message: msgNotVerified}, nil
	}

	s.log.PaymentVerified(req.Reference, recordedKobo)
	s.fulfill(ctx, sessionID, req.Reference, recordedKobo, record)

	return &transport.VerifyPaymentResponse{Success: true, Message: msgVerified}, nil
}

// fulfill runs the post-verification side effects: stock decrement, order
// event, cart clear. The payment is already verified at this point, so a
// failing side effect is logged but never turns the response into a failure.
// An empty cart means the same verified reference was confirmed twice; the
// second confirmation has nothing left to do.
func (s *Service) fulfill(ctx context.Context, sessionID, reference string, amountKobo int64, record *client.VerifyResponse) {
	cart, err := s.carts.Cart(ctx, sessionID)
	if err != nil {
		s.log.Error("loading cart after verified payment failed", "reference", reference, "error", err)
		return
	}
	if cart.IsEmpty() {
		s.log.Info("verified payment with empty cart, nothing to fulfill", "reference", reference)
		return
	}

	lines := make([]events.OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		if err := s.catalog.DecrementStock(ctx, l.ProductCode, l.Quantity); err != nil {
			s.log.DatabaseError("decrement stock", err)
		}
		lines = append(lines, events.OrderLine{
			VariantID:   l.VariantID,
			ProductCode: l.ProductCode,
			Name:        l.Name,
			Length:      l.Length,
			Density:     l.Density,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}

	s.bus.Publish(ctx, events.OrderVerified{
		BaseEvent:     events.NewBaseEvent(),
		Reference:     reference,
		AmountKobo:    amountKobo,
		CustomerEmail: record.Data.Customer.Email,
		CustomerPhone: phone.NormalizeE164(record.Data.Customer.Phone),
		Lines:         lines,
	})

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		s.log.Error("clearing cart after verified payment failed", "reference", reference, "error", err)
	}
}

// VerifyTimeout bounds one verification round trip including fulfillment.
const VerifyTimeout = 15 * time.Second
