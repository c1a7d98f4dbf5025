package dispatch

import (
	"context"
	"log"
	"sync"

	"github.com/placepulse/notifier/internal/models"
)

// Pool runs dispatches on a bounded queue with a fixed worker count, so an
// event burst cannot fan out into unbounded goroutines. Dispatch errors
// surface on Failures; a full queue drops the intent with a log line
// (at-most-once semantics, callers never retry).
type Pool struct {
	dispatcher *Dispatcher
	queue      chan models.NotificationIntent
	failures   chan error
	workers    int
	wg         sync.WaitGroup
}

// NewPool creates a pool with the given worker count and queue depth.
func NewPool(dispatcher *Dispatcher, workers, depth int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if depth < 1 {
		depth = 1
	}
	return &Pool{
		dispatcher: dispatcher,
		queue:      make(chan models.NotificationIntent, depth),
		failures:   make(chan error, depth),
		workers:    workers,
	}
}

// Start launches the workers. They run until Stop is called.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for intent := range p.queue {
				if _, err := p.dispatcher.Dispatch(ctx, intent); err != nil {
					log.Printf("dispatch: %v", err)
					select {
					case p.failures <- err:
					default:
					}
				}
			}
		}()
	}
}

// Enqueue hands an intent to the pool. Returns false when the queue is
// full and the intent was dropped.
func (p *Pool) Enqueue(intent models.NotificationIntent) bool {
	select {
	case p.queue <- intent:
		return true
	default:
		log.Printf("dispatch: queue full, dropping %s notification for %s", intent.Category, intent.RecipientID)
		return false
	}
}

// Failures exposes dispatch errors for observation; entries are dropped
// when nobody drains the channel.
func (p *Pool) Failures() <-chan error {
	return p.failures
}

// Stop drains the queue, waits for in-flight dispatches, and closes the
// failure channel. Enqueue must not be called after Stop.
func (p *Pool) Stop() {
	close(p.queue)
	p.wg.Wait()
	close(p.failures)
}
