package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/api/metrics"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// ErrQueueFull is returned by Enqueue when every buffered slot is taken.
var ErrQueueFull = errors.New("mail queue is full")

// MailDispatcher delivers mail on a fixed set of background workers so that
// request handlers never wait on SMTP.
type MailDispatcher struct {
	queue   chan ports.MailMessage
	workers int
	mailer  ports.Mailer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewMailDispatcher creates a dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &MailDispatcher{
		queue:   make(chan ports.MailMessage, channelBuffer),
		workers: numWorkers,
		mailer:  mailer,
		log:     log,
	}
}

// Start launches the workers. Once ctx is cancelled they deliver whatever is
// still queued and return.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// Wait blocks until every worker has drained the queue and returned.
func (d *MailDispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands msg to the workers without blocking.
func (d *MailDispatcher) Enqueue(msg ports.MailMessage) error {
	select {
	case d.queue <- msg:
		metrics.MailQueueDepth.Set(float64(len(d.queue)))
		return nil
	default:
		metrics.MailSentTotal.WithLabelValues("dropped").Inc()
		return ErrQueueFull
	}
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id)
			return
		case msg := <-d.queue:
			metrics.MailQueueDepth.Set(float64(len(d.queue)))
			d.deliver(ctx, id, msg)
		}
	}
}

// drain delivers the messages left in the queue after shutdown was signalled.
func (d *MailDispatcher) drain(ctx context.Context, id int) {
	drained := 0
	for {
		select {
		case msg := <-d.queue:
			metrics.MailQueueDepth.Set(float64(len(d.queue)))
			d.deliver(ctx, id, msg)
			drained++
		default:
			if drained > 0 {
				d.log.Info().Int("worker_id", id).Int("count", drained).Msg("queued mail flushed on shutdown")
			}
			return
		}
	}
}

// deliver sends msg with its own deadline. The send is detached from ctx
// cancellation so shutdown does not abort a message mid-flight.
func (d *MailDispatcher) deliver(ctx context.Context, id int, msg ports.MailMessage) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	if err := d.mailer.Send(sendCtx, msg); err != nil {
		metrics.MailSentTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("subject", msg.Subject).
			Int("worker_id", id).
			Msg("mail delivery failed")
		return
	}
	metrics.MailSentTotal.WithLabelValues("ok").Inc()
	d.log.Debug().Str("subject", msg.Subject).Int("worker_id", id).Msg("mail delivered")
}
