package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a ULID string. The embedded timestamp keeps ids roughly
// sortable by creation time while staying globally unique.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
