package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront_backend/internal/cart/domain"
	catalogrepo "storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/checkout/client"
	"storefront_backend/internal/checkout/transport"
	"storefront_backend/internal/events"
	"storefront_backend/internal/notification"
	"storefront_backend/internal/scheduler"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
)

type stubProcessor struct {
	calls    int
	response *client.VerifyResponse
	err      error
}

func (p *stubProcessor) VerifyTransaction(_ context.Context, reference string) (*client.VerifyResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.response, nil
}

type stubCarts struct {
	cart    domain.Cart
	cleared bool
}

func (c *stubCarts) Cart(context.Context, string) (domain.Cart, error) { return c.cart, nil }

func (c *stubCarts) ClearCart(context.Context, string) error {
	c.cleared = true
	c.cart = domain.Cart{}
	return nil
}

type stubCatalog struct {
	catalogrepo.Repository
	decrements map[string]int
}

func (s *stubCatalog) DecrementStock(_ context.Context, code string, qty int) error {
	if s.decrements == nil {
		s.decrements = make(map[string]int)
	}
	s.decrements[code] += qty
	return nil
}

// recordingBus captures published events synchronously so tests can assert on
// them without racing the in-memory bus's goroutines.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

type shippingConfig float64

func (s shippingConfig) GetShippingFeeNGN() float64 { return float64(s) }

func processorRecord(status string, amountKobo int64) *client.VerifyResponse {
	resp := &client.VerifyResponse{Status: true, Message: "Verification successful"}
	resp.Data.Status = status
	resp.Data.Amount = amountKobo
	resp.Data.Customer.Email = "ada@example.com"
	resp.Data.Customer.Phone = "08031234567"
	return resp
}

func twoLineCart() domain.Cart {
	return domain.Cart{Lines: []domain.Line{
		{VariantID: "DW12-12-180%", ProductCode: "DW12", Name: "Deep Wave", Length: 12, Density: "180%", UnitPrice: 43750, Quantity: 2},
		{VariantID: "ST10-10-150%", ProductCode: "ST10", Name: "Straight", Length: 10, Density: "150%", UnitPrice: 15000, Quantity: 1},
	}}
}

func newTestService(p *stubProcessor, carts *stubCarts, catalog *stubCatalog, bus *recordingBus) *Service {
	return NewService(p, carts, catalog, bus, shippingConfig(2500), logger.New("development"))
}

func TestVerifyPaymentExactMatch(t *testing.T) {
	processor := &stubProcessor{response: processorRecord("success", 10500000)}
	carts := &stubCarts{cart: twoLineCart()}
	catalog := &stubCatalog{}
	bus := &recordingBus{}
	svc := newTestService(processor, carts, catalog, bus)

	// 2×43750 + 15000 + 2500 shipping = 105000 NGN = 10500000 kobo
	resp, err := svc.VerifyPayment(context.Background(), "s1", transport.VerifyPaymentRequest{
		Reference: "TX-001", Amount: 105000,
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected verified, got %+v", resp)
	}
	if processor.calls != 1 {
		t.Errorf("processor called %d times, want 1", processor.calls)
	}
	if !carts.cleared {
		t.Error("cart not cleared after verified payment")
	}
	if catalog.decrements["DW12"] != 2 || catalog.decrements["ST10"] != 1 {
		t.Errorf("stock decrements wrong: %v", catalog.decrements)
	}

	published := bus.published()
	if len(published) != 1 {
		t.Fatalf("got %d events, want 1", len(published))
	}
	order, ok := published[0].(events.OrderVerified)
	if !ok {
		t.Fatalf("published %T, want OrderVerified", published[0])
	}
	if order.Reference != "TX-001" || order.AmountKobo != 10500000 {
		t.Errorf("event mismatch: %+v", order)
	}
	if order.CustomerEmail != "ada@example.com" {
		t.Errorf("customer email: got %q", order.CustomerEmail)
	}
	if order.CustomerPhone != "+2348031234567" {
		t.Errorf("customer phone not normalized: got %q", order.CustomerPhone)
	}
	if len(order.Lines) != 2 {
		t.Errorf("event carries %d lines, want 2", len(order.Lines))
	}
}

func TestVerifyPaymentAmountMismatch(t *testing.T) {
	// Processor recorded one kobo more than claimed.
	processor := &stubProcessor{response: processorRecord("success", 10500001)}
	carts := &stubCarts{cart: twoLineCart()}
	catalog := &stubCatalog{}
	bus := &recordingBus{}
	svc := newTestService(processor, carts, catalog, bus)

	resp, err := svc.VerifyPayment(context.Background(), "s1", transport.VerifyPaymentRequest{
		Reference: "TX-002", Amount: 105000,
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if resp.Success {
		t.Fatal("one-kobo mismatch must not verify")
	}
	if carts.cleared {
		t.Error("cart cleared on rejected payment")
	}
	if len(catalog.decrements) != 0 {
		t.Errorf("stock touched on rejected payment: %v", catalog.decrements)
	}

	published := bus.published()
	if len(published) != 1 {
		t.Fatalf("got %d events, want 1", len(published))
	}
	if _, ok := published[0].(events.PaymentRejected); !ok {
		t.Fatalf("published %T, want PaymentRejected", published[0])
	}
}

func TestVerifyPaymentProcessorStatusNotSuccess(t *testing.T) {
	// Amount matches, but the processor never saw the charge complete.
	processor := &stubProcessor{response: processorRecord("failed", 10500000)}
	carts := &stubCarts{cart: twoLineCart()}
	bus := &recordingBus{}
	svc := newTestService(processor, carts, &stubCatalog{}, bus)

	resp, err := svc.VerifyPayment(context.Background(), "s1", transport.VerifyPaymentRequest{
		Reference: "TX-003", Amount: 105000,
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if resp.Success {
		t.Fatal("non-success processor status must not verify")
	}
	if carts.cleared {
		t.Error("cart cleared on rejected payment")
	}
}

func TestVerifyPaymentUpstreamFailure(t *testing.T) {
	processor := &stubProcessor{err: apperr.Upstream("payment processor unreachable")}
	carts := &stubCarts{cart: twoLineCart()}
	svc := newTestService(processor, carts, &stubCatalog{}, &recordingBus{})

	_, err := svc.VerifyPayment(context.Background(), "s1", transport.VerifyPaymentRequest{
		Reference: "TX-004", Amount: 105000,
	})
	if err == nil {
		t.Fatal("upstream failure must surface as an error, not a rejection")
	}
	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Errorf("got kind %v, want KindUpstream", apperr.GetKind(err))
	}
	if carts.cleared {
		t.Error("cart cleared on upstream failure")
	}
}

func TestVerifyPaymentDuplicateConfirmIsNoOp(t *testing.T) {
	processor := &stubProcessor{response: processorRecord("success", 10500000)}
	carts := &stubCarts{cart: domain.Cart{}}
	catalog := &stubCatalog{}
	bus := &recordingBus{}
	svc := newTestService(processor, carts, catalog, bus)

	resp, err := svc.VerifyPayment(context.Background(), "s1", transport.VerifyPaymentRequest{
		Reference: "TX-001", Amount: 105000,
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if !resp.Success {
		t.Fatal("re-confirming a verified reference should still succeed")
	}
	if len(bus.published()) != 0 {
		t.Error("empty cart must not publish an order event")
	}
	if len(catalog.decrements) != 0 {
		t.Errorf("empty cart must not touch stock: %v", catalog.decrements)
	}
}

func TestSummaryTotals(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	svc := newTestService(&stubProcessor{}, carts, &stubCatalog{}, &recordingBus{})

	summary, err := svc.Summary(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Subtotal != 102500 {
		t.Errorf("subtotal: got %.2f, want 102500", summary.Subtotal)
	}
	if summary.ShippingFee != 2500 {
		t.Errorf("shipping: got %.2f, want 2500", summary.ShippingFee)
	}
	if summary.Total != 105000 {
		t.Errorf("total: got %.2f, want 105000", summary.Total)
	}
	if summary.AmountKobo != 10500000 {
		t.Errorf("kobo: got %d, want 10500000", summary.AmountKobo)
	}
	if summary.ItemCount != 3 {
		t.Errorf("item count: got %d, want 3", summary.ItemCount)
	}
}

func TestSummaryEmptyCartHasNoShipping(t *testing.T) {
	svc := newTestService(&stubProcessor{}, &stubCarts{}, &stubCatalog{}, &recordingBus{})

	summary, err := svc.Summary(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Total != 0 || summary.ShippingFee != 0 || summary.AmountKobo != 0 {
		t.Errorf("empty cart should total zero: %+v", summary)
	}
}

// signalingScheduler reports the context state observed at enqueue time.
type signalingScheduler struct {
	payload scheduler.OrderConfirmationPayload
	done    chan error
}

func (s *signalingScheduler) EnqueueOrderConfirmation(ctx context.Context, p scheduler.OrderConfirmationPayload) error {
	s.payload = p
	s.done <- ctx.Err()
	return nil
}

// The HTTP handler cancels the request context the moment the verify response
// is written, while the confirmation email is enqueued from an async event
// handler. The enqueue must survive that cancelation or the email is lost.
func TestVerifyPaymentConfirmationSurvivesRequestCancel(t *testing.T) {
	processor := &stubProcessor{response: processorRecord("success", 10500000)}
	carts := &stubCarts{cart: twoLineCart()}
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sched := &signalingScheduler{done: make(chan error, 1)}
	notification.NewModule(bus, sched, log)

	svc := NewService(processor, carts, &stubCatalog{}, bus, shippingConfig(2500), log)

	ctx, cancel := context.WithCancel(context.Background())
	resp, err := svc.VerifyPayment(ctx, "s1", transport.VerifyPaymentRequest{
		Reference: "TX-001", Amount: 105000,
	})
	cancel()
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected verified payment, got %+v", resp)
	}

	select {
	case ctxErr := <-sched.done:
		if ctxErr != nil {
			t.Fatalf("confirmation enqueued with a dead context: %v", ctxErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("order confirmation was never enqueued")
	}
	if sched.payload.Reference != "TX-001" {
		t.Errorf("payload reference: got %q, want TX-001", sched.payload.Reference)
	}
	if sched.payload.CustomerEmail != "ada@example.com" {
		t.Errorf("payload email: got %q", sched.payload.CustomerEmail)
	}
}
