package relay

import (
	"context"
	"fmt"
	"log"

	"github.com/placepulse/notifier/internal/dispatch"
	"github.com/placepulse/notifier/internal/feed"
	"github.com/placepulse/notifier/internal/models"
	"github.com/placepulse/notifier/internal/rules"
)

// watchSelectors are the feeds the relay observes: the three top-level
// collections plus the comment collection group.
var watchSelectors = []feed.Selector{
	{Collection: rules.CollReviews},
	{Collection: rules.CollPosts},
	{Collection: rules.CollUsers},
	{Collection: rules.CollComments, Group: true},
}

// Relay connects the change feeds to the classification engine and the
// dispatch pool.
type Relay struct {
	adapter *feed.Adapter
	engine  *rules.Engine
	pool    *dispatch.Pool
	subs    []*feed.Subscription
}

// New creates a Relay.
func New(adapter *feed.Adapter, engine *rules.Engine, pool *dispatch.Pool) *Relay {
	return &Relay{adapter: adapter, engine: engine, pool: pool}
}

// Start opens all feed subscriptions. Each change event is handled inside
// its own error boundary, so one bad event never takes a subscription down.
func (r *Relay) Start(ctx context.Context) error {
	for _, sel := range watchSelectors {
		sel := sel
		sub, err := r.adapter.Subscribe(ctx, sel,
			func(evt models.ChangeEvent) { r.handle(ctx, evt) },
			func(err error) { log.Printf("relay: feed %q: %v", sel.Collection, err) },
		)
		if err != nil {
			r.Stop()
			return fmt.Errorf("subscribing to %q: %w", sel.Collection, err)
		}
		r.subs = append(r.subs, sub)
		log.Printf("relay: watching %q (group=%v)", sel.Collection, sel.Group)
	}
	return nil
}

// Stop cancels every subscription.
func (r *Relay) Stop() {
	for _, sub := range r.subs {
		sub.Stop()
	}
	r.subs = nil
}

func (r *Relay) handle(ctx context.Context, evt models.ChangeEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("relay: panic handling %s/%s: %v", evt.CollectionPath, evt.DocumentID, rec)
		}
	}()

	for _, intent := range r.engine.Classify(ctx, evt) {
		if intent.RecipientID == "" || intent.RecipientID == intent.Sender.ID {
			continue
		}
		r.pool.Enqueue(intent)
	}
}
