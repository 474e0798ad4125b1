package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hotel-management/pkg/helpers"
	"github.com/oksasatya/hotel-management/pkg/mailer"
)

type fakeSender struct {
	fails   int
	err     error
	calls   int
	subject string
}

func (f *fakeSender) Send(_ context.Context, _, subject, _, _ string) error {
	f.calls++
	f.subject = subject
	if f.calls <= f.fails {
		return f.err
	}
	return nil
}

func body(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func newWorker(s Sender) *worker {
	return &worker{sender: s, log: helpers.NewNopLogger(), maxElapsed: 5 * time.Second}
}

func TestHandleRawJob(t *testing.T) {
	s := &fakeSender{}
	err := newWorker(s).handle(context.Background(), body(t, mailer.EmailJob{To: "a@b.test", Subject: "Hello", Text: "hi"}))
	require.NoError(t, err)
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, "Hello", s.subject)
}

func TestHandleTemplateJob(t *testing.T) {
	s := &fakeSender{}
	job := mailer.EmailJob{To: "a@b.test", Template: "verify_email", Data: map[string]any{"VerifyURL": "https://hotel.test/verify?token=x"}}
	require.NoError(t, newWorker(s).handle(context.Background(), body(t, job)))
	assert.NotEmpty(t, s.subject)
}

func TestHandlePermanentFailures(t *testing.T) {
	w := newWorker(&fakeSender{})
	for _, b := range [][]byte{
		[]byte("{not json"),
		body(t, mailer.EmailJob{Subject: "no recipient", Text: "x"}),
		body(t, mailer.EmailJob{To: "a@b.test", Template: "newsletter"}),
		body(t, mailer.EmailJob{To: "a@b.test", Subject: "no body"}),
	} {
		assert.ErrorIs(t, w.handle(context.Background(), b), errPermanent, string(b))
	}
}

func TestHandleRetriesTransientErrors(t *testing.T) {
	s := &fakeSender{fails: 2, err: errors.New("502 bad gateway")}
	require.NoError(t, newWorker(s).handle(context.Background(), body(t, mailer.EmailJob{To: "a@b.test", Subject: "S", Text: "x"})))
	assert.Equal(t, 3, s.calls)
}

func TestHandleStopsOnUnconfiguredMailgun(t *testing.T) {
	s := &fakeSender{fails: 100, err: mailer.ErrMailgunNotConfigured}
	err := newWorker(s).handle(context.Background(), body(t, mailer.EmailJob{To: "a@b.test", Subject: "S", Text: "x"}))
	assert.ErrorIs(t, err, mailer.ErrMailgunNotConfigured)
	assert.Equal(t, 1, s.calls)
}
