package models

// EmailKind selects the template of an outbound e-mail.
type EmailKind string

const (
	EmailConfirmation  EmailKind = "confirm_email"
	EmailPasswordReset EmailKind = "reset_password"
)

// EmailJob is a request to deliver one templated e-mail. Jobs are published
// to the message broker by the API and consumed by the e-mail worker.
type EmailJob struct {
	Kind     EmailKind `json:"kind"`
	To       string    `json:"to"`
	Username string    `json:"username"`

	// Token is the e-mail purpose token embedded into the link.
	Token string `json:"token"`

	// Host is the public base URL of the API the link points to.
	Host string `json:"host"`
}
