// Package notification bridges verified orders to customer-facing messages.
// It subscribes to checkout events and hands deliveries to the task queue;
// the HTTP request that triggered the order never waits on an SMTP server.
package notification

import (
	"context"

	"storefront_backend/internal/events"
	"storefront_backend/internal/scheduler"
	"storefront_backend/platform/logger"
)

type Module struct {
	scheduler scheduler.ConfirmationScheduler
	log       *logger.Logger
}

// NewModule wires the notification module to the event bus. A delivery
// failure is logged and retried by the queue; it can never undo or block a
// verified payment.
func NewModule(bus events.Bus, sched scheduler.ConfirmationScheduler, log *logger.Logger) *Module {
	m := &Module{scheduler: sched, log: log}

	bus.Subscribe(events.OrderVerified{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.OrderVerified)
		if !ok {
			return nil
		}
		return m.enqueueConfirmation(ctx, e)
	}))

	return m
}

func (m *Module) enqueueConfirmation(ctx context.Context, e events.OrderVerified) error {
	if e.CustomerEmail == "" {
		m.log.Info("verified order without customer email, skipping confirmation", "reference", e.Reference)
		return nil
	}

	lines := make([]scheduler.OrderLinePayload, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, scheduler.OrderLinePayload{
			Name:      l.Name,
			Length:    l.Length,
			Density:   l.Density,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	err := m.scheduler.EnqueueOrderConfirmation(ctx, scheduler.OrderConfirmationPayload{
		Reference:     e.Reference,
		AmountKobo:    e.AmountKobo,
		CustomerEmail: e.CustomerEmail,
		CustomerPhone: e.CustomerPhone,
		Lines:         lines,
	})
	if err != nil {
		m.log.Error("enqueueing order confirmation failed", "reference", e.Reference, "error", err)
		return err
	}

	m.log.Info("order confirmation enqueued", "reference", e.Reference)
	return nil
}
