package mailer

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidJob = errors.New("invalid email job")

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject with a Text or HTML body must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // booking_confirmed, booking_cancelled, payment_receipt, verify_email, reset_password
	Data     map[string]any `json:"data,omitempty"`
}

// Validate checks the job's shape. Whether Template names a known template
// is left to the renderer.
func (j EmailJob) Validate() error {
	if strings.TrimSpace(j.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrInvalidJob)
	}
	if j.Template != "" {
		return nil
	}
	if strings.TrimSpace(j.Subject) == "" || (j.Text == "" && j.HTML == "") {
		return fmt.Errorf("%w: job without template needs subject and body", ErrInvalidJob)
	}
	return nil
}
