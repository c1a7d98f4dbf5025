package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/placepulse/notifier/internal/models"
)

func rawFor(op string) rawChange {
	raw := rawChange{OperationType: op}
	raw.DocumentKey.ID = "doc1"
	raw.NS.Coll = "reviews"
	raw.FullDocument = models.Document{"id": "doc1", "userId": "u1"}
	raw.FullDocumentBeforeChange = models.Document{"id": "doc1"}
	return raw
}

func TestEventFromRawInsert(t *testing.T) {
	evt, ok := eventFromRaw(rawFor("insert"), "reviews")

	require.True(t, ok)
	assert.Equal(t, models.ChangeAdded, evt.Kind)
	assert.Equal(t, "reviews", evt.CollectionPath)
	assert.Equal(t, "doc1", evt.DocumentID)
	assert.Equal(t, "u1", evt.After.String("userId"))
}

func TestEventFromRawUpdateAndReplace(t *testing.T) {
	for _, op := range []string{"update", "replace"} {
		evt, ok := eventFromRaw(rawFor(op), "reviews")
		require.True(t, ok, op)
		assert.Equal(t, models.ChangeModified, evt.Kind, op)
		assert.NotNil(t, evt.Before, op)
	}
}

func TestEventFromRawDelete(t *testing.T) {
	evt, ok := eventFromRaw(rawFor("delete"), "reviews")

	require.True(t, ok)
	assert.Equal(t, models.ChangeRemoved, evt.Kind)
	assert.Nil(t, evt.After)
}

func TestEventFromRawSkipsUnknownOperations(t *testing.T) {
	for _, op := range []string{"invalidate", "drop", "rename"} {
		_, ok := eventFromRaw(rawFor(op), "reviews")
		assert.False(t, ok, op)
	}
}

func TestEventFromRawObjectIDKey(t *testing.T) {
	oid := primitive.NewObjectID()
	raw := rawFor("insert")
	raw.DocumentKey.ID = oid

	evt, ok := eventFromRaw(raw, "reviews")

	require.True(t, ok)
	assert.Equal(t, oid.Hex(), evt.DocumentID)
}

func TestEventFromRawFallbackCollection(t *testing.T) {
	raw := rawFor("insert")
	raw.NS.Coll = ""

	evt, ok := eventFromRaw(raw, "comments")

	require.True(t, ok)
	assert.Equal(t, "comments", evt.CollectionPath)
}
