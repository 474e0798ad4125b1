package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailJobValidate(t *testing.T) {
	tests := []struct {
		name string
		job  EmailJob
		ok   bool
	}{
		{"template", EmailJob{To: "ada@example.com", Template: "verify_email"}, true},
		{"raw text", EmailJob{To: "ada@example.com", Subject: "Hi", Text: "hello"}, true},
		{"raw html", EmailJob{To: "ada@example.com", Subject: "Hi", HTML: "<p>hello</p>"}, true},
		{"no recipient", EmailJob{Template: "verify_email"}, false},
		{"blank subject", EmailJob{To: "ada@example.com", Subject: " ", Text: "hello"}, false},
		{"no body", EmailJob{To: "ada@example.com", Subject: "Hi"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidJob)
			}
		})
	}
}
