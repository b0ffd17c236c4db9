// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mail renders and delivers the transactional e-mails of the service:
// address confirmation and password reset.
//
// Messages are rendered from HTML templates embedded in the binary and sent
// over SMTP with go-mail. When no SMTP host is configured a logging sender is
// used instead, which prints the rendered link so local setups stay usable.
package mail

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/models"
	gomail "github.com/wneessen/go-mail"
)

//go:generate mockgen -source=sender.go -destination=../mock/mail_mock.go -package=mock

// Sender delivers one e-mail job.
type Sender interface {
	Send(ctx context.Context, job models.EmailJob) error
}

type smtpSender struct {
	host     string
	opts     []gomail.Option
	from     string
	fromName string

	logger *logger.Logger
}

// NewSender returns the SMTP sender for cfg, or a logging sender when
// cfg.Host is empty.
func NewSender(cfg config.Mail, logger *logger.Logger) (Sender, error) {
	if cfg.Host == "" {
		return NewLogSender(logger), nil
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("%w: sender address is required", ErrSendingEmail)
	}

	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.SSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	// the client is validated once here and built per message in Send
	if _, err := gomail.NewClient(cfg.Host, opts...); err != nil {
		return nil, fmt.Errorf("invalid smtp settings: %w", err)
	}

	return &smtpSender{
		host:     cfg.Host,
		opts:     opts,
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, job models.EmailJob) error {
	log := logger.FromContext(ctx)

	msg, err := Render(job)
	if err != nil {
		return err
	}

	m, err := s.buildMsg(msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	if err = client.DialAndSendWithContext(ctx, m); err != nil {
		log.Err(err).Str("func", "*smtpSender.Send").Str("kind", string(job.Kind)).Msg("smtp delivery failed")
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	log.Info().Str("kind", string(job.Kind)).Msg("email sent")
	return nil
}

func (s *smtpSender) buildMsg(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.from); err != nil {
		return nil, fmt.Errorf("%w: invalid sender: %w", ErrSendingEmail, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient: %w", ErrSendingEmail, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	return m, nil
}

type logSender struct {
	logger *logger.Logger
}

// NewLogSender returns a Sender that renders the message and logs it instead
// of delivering it.
func NewLogSender(logger *logger.Logger) Sender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(_ context.Context, job models.EmailJob) error {
	msg, err := Render(job)
	if err != nil {
		return err
	}

	s.logger.Warn().
		Str("kind", string(job.Kind)).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("link", link(job, emailTemplates[job.Kind])).
		Msg("smtp is not configured, email was not delivered")

	return nil
}
