package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/broker"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/mail"
	"github.com/MKhiriev/go-photo-share/internal/metrics"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/sethvargo/go-retry"
)

// Reconnect backoff of the e-mail consumer.
const (
	consumeRetryBase = 500 * time.Millisecond
	consumeRetryCap  = 30 * time.Second
)

// EmailConsumer is the consuming side of the e-mail queue.
type EmailConsumer interface {
	ConsumeEmails(ctx context.Context, handle broker.EmailHandler) error
}

// EmailWorker delivers e-mail jobs taken from the queue with a mail.Sender.
// A broken consumer is restarted with capped exponential backoff; each
// restart lets the broker redial a lost connection.
type EmailWorker struct {
	consumer EmailConsumer
	sender   mail.Sender

	backoff func() retry.Backoff

	logger *logger.Logger
}

func NewEmailWorker(consumer EmailConsumer, sender mail.Sender, logger *logger.Logger) *EmailWorker {
	return &EmailWorker{
		consumer: consumer,
		sender:   sender,
		backoff: func() retry.Backoff {
			return retry.WithCappedDuration(consumeRetryCap, retry.NewExponential(consumeRetryBase))
		},
		logger: logger,
	}
}

func (w *EmailWorker) Run(ctx context.Context) error {
	w.logger.Info().Msg("email worker started")

	err := retry.Do(ctx, w.backoff(), func(ctx context.Context) error {
		err := w.consumer.ConsumeEmails(ctx, w.deliver)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = broker.ErrDeliveriesDone
		}
		w.logger.Err(err).Str("func", "*EmailWorker.Run").Msg("email consumer stopped, restarting")
		return retry.RetryableError(err)
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("email worker stopped: %w", err)
	}

	w.logger.Info().Msg("email worker stopped")
	return nil
}

func (w *EmailWorker) deliver(ctx context.Context, job models.EmailJob) error {
	if err := w.sender.Send(ctx, job); err != nil {
		metrics.EmailJobs.WithLabelValues("broker", "failed").Inc()
		return err
	}
	metrics.EmailJobs.WithLabelValues("broker", "sent").Inc()
	return nil
}
