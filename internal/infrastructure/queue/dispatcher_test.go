package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroom/publishing-api/internal/core/ports"
)

type stubMailer struct {
	mu        sync.Mutex
	sent      []ports.MailMessage
	failFirst bool
	ctxErrs   int
	done      chan struct{}
}

func newStubMailer(capacity int) *stubMailer {
	return &stubMailer{done: make(chan struct{}, capacity)}
}

func (s *stubMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	s.mu.Lock()
	if ctx.Err() != nil {
		s.ctxErrs++
	}
	defer func() {
		s.mu.Unlock()
		s.done <- struct{}{}
	}()
	if s.failFirst {
		s.failFirst = false
		return errors.New("smtp: connection refused")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *stubMailer) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestMailDispatcher_Delivers(t *testing.T) {
	mailer := newStubMailer(4)
	d := NewMailDispatcher(2, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	require.NoError(t, d.Enqueue(ports.MailMessage{To: "a@example.com", Subject: "one"}))
	require.NoError(t, d.Enqueue(ports.MailMessage{To: "b@example.com", Subject: "two"}))
	mailer.waitFor(t, 2)

	cancel()
	d.Wait()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	subjects := []string{mailer.sent[0].Subject, mailer.sent[1].Subject}
	assert.ElementsMatch(t, []string{"one", "two"}, subjects)
}

func TestMailDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	mailer := newStubMailer(4)
	mailer.failFirst = true
	d := NewMailDispatcher(1, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	require.NoError(t, d.Enqueue(ports.MailMessage{To: "a@example.com", Subject: "lost"}))
	require.NoError(t, d.Enqueue(ports.MailMessage{To: "a@example.com", Subject: "kept"}))
	mailer.waitFor(t, 2)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "kept", mailer.sent[0].Subject)
}

func TestMailDispatcher_FlushesQueueOnShutdown(t *testing.T) {
	mailer := newStubMailer(10)
	d := NewMailDispatcher(2, mailer, zerolog.Nop())

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Enqueue(ports.MailMessage{To: "a@example.com", Subject: "restore"}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Len(t, mailer.sent, 5, "queued mail must be delivered before the workers return")
	assert.Zero(t, mailer.ctxErrs, "sends must not inherit the shutdown cancellation")
	assert.Zero(t, len(d.queue))
}

func TestMailDispatcher_EnqueueFull(t *testing.T) {
	d := NewMailDispatcher(1, newStubMailer(0), zerolog.Nop())

	for i := 0; i < channelBuffer; i++ {
		require.NoError(t, d.Enqueue(ports.MailMessage{To: "a@example.com"}))
	}
	assert.ErrorIs(t, d.Enqueue(ports.MailMessage{To: "a@example.com"}), ErrQueueFull)
}

func TestNewMailDispatcher_DefaultWorkers(t *testing.T) {
	d := NewMailDispatcher(0, newStubMailer(0), zerolog.Nop())
	assert.Equal(t, defaultWorkers, d.workers)
}
