package notification

import (
	"context"
	"errors"
	"testing"

	"storefront_backend/internal/events"
	"storefront_backend/internal/scheduler"
	"storefront_backend/platform/logger"
)

type captureScheduler struct {
	payloads []scheduler.OrderConfirmationPayload
	err      error
}

func (c *captureScheduler) EnqueueOrderConfirmation(_ context.Context, p scheduler.OrderConfirmationPayload) error {
	if c.err != nil {
		return c.err
	}
	c.payloads = append(c.payloads, p)
	return nil
}

func verifiedOrder(email string) events.OrderVerified {
	return events.OrderVerified{
		BaseEvent:     events.NewBaseEvent(),
		Reference:     "TX-001",
		AmountKobo:    10500000,
		CustomerEmail: email,
		Lines: []events.OrderLine{
			{VariantID: "DW12-12-180%", ProductCode: "DW12", Name: "Deep Wave", Length: 12, Density: "180%", UnitPrice: 43750, Quantity: 2},
		},
	}
}

func TestOrderVerifiedEnqueuesConfirmation(t *testing.T) {
	bus := events.NewInMemoryBus(logger.New("development"))
	sched := &captureScheduler{}
	NewModule(bus, sched, logger.New("development"))

	if err := bus.PublishSync(context.Background(), verifiedOrder("ada@example.com")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(sched.payloads) != 1 {
		t.Fatalf("got %d enqueued payloads, want 1", len(sched.payloads))
	}
	p := sched.payloads[0]
	if p.Reference != "TX-001" || p.CustomerEmail != "ada@example.com" {
		t.Errorf("payload mismatch: %+v", p)
	}
	if len(p.Lines) != 1 || p.Lines[0].Quantity != 2 {
		t.Errorf("payload lines mismatch: %+v", p.Lines)
	}
}

func TestOrderWithoutEmailIsSkipped(t *testing.T) {
	bus := events.NewInMemoryBus(logger.New("development"))
	sched := &captureScheduler{}
	NewModule(bus, sched, logger.New("development"))

	if err := bus.PublishSync(context.Background(), verifiedOrder("")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(sched.payloads) != 0 {
		t.Errorf("enqueued %d payloads for an order without email, want 0", len(sched.payloads))
	}
}

func TestEnqueueFailureSurfacesToBus(t *testing.T) {
	bus := events.NewInMemoryBus(logger.New("development"))
	sched := &captureScheduler{err: errors.New("queue down")}
	NewModule(bus, sched, logger.New("development"))

	if err := bus.PublishSync(context.Background(), verifiedOrder("ada@example.com")); err == nil {
		t.Fatal("expected handler error to surface through PublishSync")
	}
}
