package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/hotel-management/pkg/mailer"
)

// NewTemplateJob builds a queued email for one of the embedded templates.
func NewTemplateJob(to, template string, data map[string]any) mailer.EmailJob {
	job := mailer.EmailJob{To: strings.TrimSpace(to), Template: template, Data: data}
	EnsureRecipient(&job)
	return job
}

// EnsureRecipient fills the recipient fields templates rely on.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || v == nil || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["Name"]; !ok || v == nil || fmt.Sprintf("%v", v) == "" {
		if i := strings.Index(job.To, "@"); i > 0 {
			job.Data["Name"] = job.To[:i]
		}
	}
}
