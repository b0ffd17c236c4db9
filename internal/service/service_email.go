package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/broker"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/mail"
	"github.com/MKhiriev/go-photo-share/internal/metrics"
	"github.com/MKhiriev/go-photo-share/models"
)

// DefaultEmailSendTimeout bounds in-process deliveries, which outlive the
// request that started them.
const DefaultEmailSendTimeout = 30 * time.Second

type emailDispatcher struct {
	publisher broker.Publisher
	sender    mail.Sender

	sendTimeout time.Duration

	logger *logger.Logger
}

// NewEmailDispatcher returns a dispatcher that publishes jobs through
// publisher. A nil publisher, or a failed publish, falls back to sending in a
// background goroutine with sender.
func NewEmailDispatcher(publisher broker.Publisher, sender mail.Sender, logger *logger.Logger) EmailDispatcher {
	return &emailDispatcher{
		publisher:   publisher,
		sender:      sender,
		sendTimeout: DefaultEmailSendTimeout,
		logger:      logger,
	}
}

// Dispatch implements [EmailDispatcher]. It never blocks on SMTP.
func (d *emailDispatcher) Dispatch(ctx context.Context, job models.EmailJob) {
	log := logger.FromContext(ctx)

	if d.publisher != nil {
		err := d.publisher.PublishEmail(ctx, job)
		if err == nil {
			metrics.EmailJobs.WithLabelValues("broker", "published").Inc()
			return
		}
		log.Err(err).Str("func", "*emailDispatcher.Dispatch").Str("kind", string(job.Kind)).Msg("publishing email job failed, sending in-process")
		metrics.EmailJobs.WithLabelValues("broker", "failed").Inc()
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.sendTimeout)
	go func() {
		defer cancel()

		if err := d.sender.Send(sendCtx, job); err != nil {
			d.logger.Err(err).Str("func", "*emailDispatcher.Dispatch").Str("kind", string(job.Kind)).Msg("email delivery failed")
			metrics.EmailJobs.WithLabelValues("inprocess", "failed").Inc()
			return
		}
		metrics.EmailJobs.WithLabelValues("inprocess", "sent").Inc()
	}()
}
