package mail

import "errors"

var (
	ErrUnknownEmailKind = errors.New("unknown email kind")
	ErrEmptyRecipient   = errors.New("email recipient is required")
	ErrSendingEmail     = errors.New("error sending email")
)
