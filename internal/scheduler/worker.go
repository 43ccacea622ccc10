package scheduler

import (
	"context"
	"fmt"

	"storefront_backend/internal/email"
	"storefront_backend/internal/pricing"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskOrderConfirmation, w.handleOrderConfirmation)

	return w, nil
}

func (w *Worker) handleOrderConfirmation(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseOrderConfirmationPayload(task)
	if err != nil {
		return err
	}
	if w.sender == nil {
		w.log.Info("email sending disabled, dropping order confirmation", "reference", payload.Reference)
		return nil
	}

	data := confirmationData(payload)
	if err := w.sender.SendOrderConfirmation(ctx, payload.CustomerEmail, data); err != nil {
		w.log.Error("order confirmation delivery failed", "reference", payload.Reference, "error", err)
		return err
	}

	w.log.Info("order confirmation sent", "reference", payload.Reference)
	return nil
}

// confirmationData converts a task payload into template data, formatting all
// money values once here rather than in the template.
func confirmationData(payload OrderConfirmationPayload) email.OrderConfirmationData {
	lines := make([]email.OrderLineData, 0, len(payload.Lines))
	for _, l := range payload.Lines {
		lines = append(lines, email.OrderLineData{
			Name:               l.Name,
			Length:             l.Length,
			Density:            l.Density,
			Quantity:           l.Quantity,
			UnitPriceFormatted: pricing.FormatNGN(l.UnitPrice),
			LineTotalFormatted: pricing.FormatNGN(l.UnitPrice * float64(l.Quantity)),
		})
	}

	return email.OrderConfirmationData{
		Reference:      payload.Reference,
		Lines:          lines,
		TotalFormatted: pricing.FormatNGN(float64(payload.AmountKobo) / 100),
	}
}

// Run starts the asynq server and blocks until the context is done.
func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()
	return w.server.Run(w.mux)
}
