package push

import (
	"context"
	"errors"
)

// ErrInvalidToken marks delivery failures caused by a push token the
// provider no longer recognizes. The dispatch pipeline clears the stored
// token when it sees this kind.
var ErrInvalidToken = errors.New("push token no longer valid")

// Sender delivers one push message to one destination token and returns the
// provider's opaque message id.
type Sender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) (string, error)
}
