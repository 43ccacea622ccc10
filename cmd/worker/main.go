package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront_backend/internal/email"
	"storefront_backend/internal/scheduler"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"
)

// The worker consumes queued tasks (order confirmation emails) so the API
// process never blocks on SMTP. It shares the Redis queue with the API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sender email.Sender
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		)
	} else {
		log.Warn("email sending disabled; confirmation tasks will be dropped")
	}

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		log.Error("worker stopped with error", "error", err)
		panic("worker stopped with error: " + err.Error())
	}

	log.Info("worker shut down")
}
