package mail

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

func confirmJob() models.EmailJob {
	return models.EmailJob{
		Kind:     models.EmailConfirmation,
		To:       "alice@example.com",
		Username: "alice",
		Token:    "tok.en.sig",
		Host:     "http://localhost:8000/",
	}
}

// ── Render ──────────────────────────────────────────────────────────────────

func TestRender_Confirmation(t *testing.T) {
	msg, err := Render(confirmJob())

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Confirm your email", msg.Subject)
	assert.Contains(t, msg.HTML, "Hello, alice!")
	assert.Contains(t, msg.HTML, "http://localhost:8000/api/auth/confirmed_email/tok.en.sig")
}

func TestRender_PasswordReset(t *testing.T) {
	job := confirmJob()
	job.Kind = models.EmailPasswordReset

	msg, err := Render(job)

	require.NoError(t, err)
	assert.Equal(t, "Reset account", msg.Subject)
	assert.Contains(t, msg.HTML, "tok.en.sig")
	assert.Contains(t, msg.HTML, "http://localhost:8000/api/auth/reset_password")
	assert.NotContains(t, msg.HTML, "confirmed_email")
}

func TestRender_EscapesUsername(t *testing.T) {
	job := confirmJob()
	job.Username = "<script>x</script>"

	msg, err := Render(job)

	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestRender_Errors(t *testing.T) {
	job := confirmJob()
	job.Kind = "newsletter"
	_, err := Render(job)
	assert.ErrorIs(t, err, ErrUnknownEmailKind)

	job = confirmJob()
	job.To = ""
	_, err = Render(job)
	assert.ErrorIs(t, err, ErrEmptyRecipient)
}

// ── NewSender ───────────────────────────────────────────────────────────────

func TestNewSender_NoHost_ReturnsLogSender(t *testing.T) {
	s, err := NewSender(config.Mail{}, logger.Nop())

	require.NoError(t, err)
	assert.IsType(t, &logSender{}, s)
}

func TestNewSender_MissingFrom(t *testing.T) {
	_, err := NewSender(config.Mail{Host: "smtp.example.com", Port: 587}, logger.Nop())

	assert.ErrorIs(t, err, ErrSendingEmail)
}

func TestNewSender_SMTP(t *testing.T) {
	s, err := NewSender(config.Mail{
		Host: "smtp.example.com", Port: 465, SSL: true,
		Username: "user", Password: "pass",
		From: "noreply@example.com", FromName: "PhotoShare Application",
	}, logger.Nop())

	require.NoError(t, err)
	assert.IsType(t, &smtpSender{}, s)
}

func TestSMTPSender_BuildMsg(t *testing.T) {
	s := &smtpSender{from: "noreply@example.com", fromName: "PhotoShare Application"}

	m, err := s.buildMsg(Message{To: "alice@example.com", Subject: "Confirm your email", HTML: "<p>hi</p>"})

	require.NoError(t, err)
	assert.Equal(t, []string{"<alice@example.com>"}, m.GetToString())
	assert.Equal(t, []string{"Confirm your email"}, m.GetGenHeader(gomail.HeaderSubject))
}

func TestSMTPSender_BuildMsg_InvalidRecipient(t *testing.T) {
	s := &smtpSender{from: "noreply@example.com"}

	_, err := s.buildMsg(Message{To: "not an address", Subject: "x"})

	assert.ErrorIs(t, err, ErrSendingEmail)
}

func TestSMTPSender_Send_Unreachable(t *testing.T) {
	s, err := NewSender(config.Mail{Host: "127.0.0.1", Port: 1, From: "noreply@example.com"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = s.Send(ctx, confirmJob())
	assert.ErrorIs(t, err, ErrSendingEmail)
}

// ── logSender ───────────────────────────────────────────────────────────────

func TestLogSender_LogsLink(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(&logger.Logger{Logger: zerolog.New(&buf)})

	err := s.Send(context.Background(), confirmJob())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "http://localhost:8000/api/auth/confirmed_email/tok.en.sig")
	assert.Contains(t, buf.String(), "alice@example.com")
}

func TestLogSender_RenderError(t *testing.T) {
	s := NewLogSender(logger.Nop())

	err := s.Send(context.Background(), models.EmailJob{Kind: models.EmailConfirmation})

	assert.ErrorIs(t, err, ErrEmptyRecipient)
}
