package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/MKhiriev/go-photo-share/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Message is a rendered e-mail ready to be delivered.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type emailTemplate struct {
	file    string
	subject string
	path    string
}

var emailTemplates = map[models.EmailKind]emailTemplate{
	models.EmailConfirmation: {
		file:    "confirm_email.html",
		subject: "Confirm your email",
		path:    "/api/auth/confirmed_email/",
	},
	models.EmailPasswordReset: {
		file:    "reset_password.html",
		subject: "Reset account",
		path:    "/api/auth/reset_password",
	},
}

type templateData struct {
	Username string
	Token    string
	Link     string
}

// Render builds the message of job from the embedded templates.
func Render(job models.EmailJob) (Message, error) {
	if job.To == "" {
		return Message{}, ErrEmptyRecipient
	}

	tmpl, ok := emailTemplates[job.Kind]
	if !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownEmailKind, job.Kind)
	}

	data := templateData{
		Username: job.Username,
		Token:    job.Token,
		Link:     link(job, tmpl),
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl.file, data); err != nil {
		return Message{}, fmt.Errorf("error rendering %s: %w", tmpl.file, err)
	}

	return Message{To: job.To, Subject: tmpl.subject, HTML: body.String()}, nil
}

// link joins the public host with the endpoint of the template. Confirmation
// links carry the token in the path.
func link(job models.EmailJob, tmpl emailTemplate) string {
	host := strings.TrimRight(job.Host, "/")
	if job.Kind == models.EmailConfirmation {
		return host + tmpl.path + job.Token
	}
	return host + tmpl.path
}
