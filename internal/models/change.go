package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChangeKind tags what happened to a document on a feed tick.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

// Document is a raw document snapshot as decoded from the store.
type Document map[string]interface{}

// ChangeEvent is one observed mutation of a document. Before and After are
// nil when the store did not supply the corresponding snapshot.
type ChangeEvent struct {
	CollectionPath string
	DocumentID     string
	Kind           ChangeKind
	Before         Document
	After          Document
}

// String returns the string value of a field, or "" when the field is
// missing or not a string.
func (d Document) String(key string) string {
	if d == nil {
		return ""
	}
	if s, ok := d[key].(string); ok {
		return s
	}
	return ""
}

// Strings returns a set-valued field as a string slice. Handles both native
// string slices and the bson array form the driver decodes into.
func (d Document) Strings(key string) []string {
	if d == nil {
		return nil
	}
	switch v := d[key].(type) {
	case []string:
		return v
	case []interface{}:
		return toStrings(v)
	case primitive.A:
		return toStrings(v)
	}
	return nil
}

func toStrings(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
