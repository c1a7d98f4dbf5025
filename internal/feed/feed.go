package feed

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/placepulse/notifier/internal/models"
)

// Selector names what to watch. A plain selector watches one collection; a
// group selector watches every collection with that name anywhere in the
// store (the collection itself plus any "<parent>_<name>" subcollection).
type Selector struct {
	Collection string
	Group      bool
}

// Adapter subscribes to change feeds over the document store. It does not
// reconnect on transport failure; restarting a broken subscription is the
// caller's call.
type Adapter struct {
	db *mongo.Database
}

// NewAdapter creates a feed adapter over the given database.
func NewAdapter(db *mongo.Database) *Adapter {
	return &Adapter{db: db}
}

// Subscription is a handle to a running feed subscription.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the subscription and waits for its goroutine to exit.
func (s *Subscription) Stop() {
	s.cancel()
	<-s.done
}

// Subscribe opens a change stream for the selector and invokes onChange for
// every observed mutation until the context is cancelled or the stream
// breaks. Changes to the same document arrive in commit order; ordering
// across documents is not guaranteed. Transport failures go to onError and
// end the subscription.
func (a *Adapter) Subscribe(ctx context.Context, sel Selector, onChange func(models.ChangeEvent), onError func(error)) (*Subscription, error) {
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)

	var stream *mongo.ChangeStream
	var err error
	ctx, cancel := context.WithCancel(ctx)

	if sel.Group {
		// Database-level stream filtered to same-named collections.
		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.D{
				{Key: "ns.coll", Value: bson.D{{Key: "$regex", Value: fmt.Sprintf("(^|_)%s$", sel.Collection)}}},
			}}},
		}
		stream, err = a.db.Watch(ctx, pipeline, opts)
	} else {
		stream, err = a.db.Collection(sel.Collection).Watch(ctx, mongo.Pipeline{}, opts)
	}
	if err != nil {
		cancel()
		return nil, fmt.Errorf("opening change stream for %q: %w", sel.Collection, err)
	}

	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var raw rawChange
			if err := stream.Decode(&raw); err != nil {
				onError(fmt.Errorf("decoding change for %q: %w", sel.Collection, err))
				continue
			}
			evt, ok := eventFromRaw(raw, sel.Collection)
			if !ok {
				continue
			}
			onChange(evt)
		}

		if err := stream.Err(); err != nil && ctx.Err() == nil {
			onError(fmt.Errorf("change stream for %q: %w", sel.Collection, err))
		}
	}()

	return sub, nil
}

type rawChange struct {
	OperationType            string          `bson:"operationType"`
	FullDocument             models.Document `bson:"fullDocument"`
	FullDocumentBeforeChange models.Document `bson:"fullDocumentBeforeChange"`
	DocumentKey              struct {
		ID interface{} `bson:"_id"`
	} `bson:"documentKey"`
	NS struct {
		Coll string `bson:"coll"`
	} `bson:"ns"`
}

// eventFromRaw maps a decoded change-stream document to a ChangeEvent.
// Unknown operation types (invalidate, drop, rename) are skipped.
func eventFromRaw(raw rawChange, fallbackColl string) (models.ChangeEvent, bool) {
	evt := models.ChangeEvent{
		CollectionPath: raw.NS.Coll,
		DocumentID:     documentID(raw.DocumentKey.ID),
		Before:         raw.FullDocumentBeforeChange,
		After:          raw.FullDocument,
	}
	if evt.CollectionPath == "" {
		evt.CollectionPath = fallbackColl
	}

	switch raw.OperationType {
	case "insert":
		evt.Kind = models.ChangeAdded
	case "update", "replace":
		evt.Kind = models.ChangeModified
	case "delete":
		evt.Kind = models.ChangeRemoved
		evt.After = nil
	default:
		return models.ChangeEvent{}, false
	}
	return evt, true
}

func documentID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprintf("%v", id)
	}
}
