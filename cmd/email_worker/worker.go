package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/pkg/helpers"
	"github.com/oksasatya/hotel-management/pkg/mailer"
	mailtpl "github.com/oksasatya/hotel-management/pkg/mailer/templates"
)

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// errPermanent marks jobs that will never succeed; they are dropped, not requeued.
var errPermanent = errors.New("permanent failure")

type worker struct {
	sender     Sender
	log        *logrus.Logger
	maxElapsed time.Duration
}

// render turns a queued job into subject and bodies.
func render(job mailer.EmailJob) (subject, text, html string, err error) {
	if err := job.Validate(); err != nil {
		return "", "", "", fmt.Errorf("%w: %v", errPermanent, err)
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	if !mailtpl.Known(job.Template) {
		return "", "", "", fmt.Errorf("%w: unknown template %q", errPermanent, job.Template)
	}
	helpers.EnsureRecipient(&job)
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: render %s: %v", errPermanent, job.Template, err)
	}
	return subject, text, html, nil
}

// handle decodes, renders and sends one message body. Transient send errors
// are retried with exponential backoff before giving up.
func (w *worker) handle(ctx context.Context, body []byte) error {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: bad message: %v", errPermanent, err)
	}
	subject, text, html, err := render(job)
	if err != nil {
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = w.maxElapsed
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		c, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		err := w.sender.Send(c, job.To, subject, text, html)
		if errors.Is(err, mailer.ErrMailgunNotConfigured) {
			return backoff.Permanent(err)
		}
		if err != nil {
			w.log.WithError(err).WithFields(logrus.Fields{"to": job.To, "attempt": attempt}).Warn("send failed")
		}
		return err
	}, backoff.WithContext(bo, ctx))
}
