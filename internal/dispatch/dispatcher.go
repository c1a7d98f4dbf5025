package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/placepulse/notifier/internal/models"
	"github.com/placepulse/notifier/internal/push"
	"github.com/placepulse/notifier/internal/repositories"
	"github.com/placepulse/notifier/pkg/id"
)

// ErrRecipientNotFound is returned when the intent's recipient has no user
// document; nothing is sent and nothing is written.
var ErrRecipientNotFound = errors.New("recipient not found")

// Result reports what a dispatch accomplished.
type Result struct {
	Delivered bool
	Persisted bool
}

// Dispatcher turns an intent into a push attempt plus a persisted
// notification record. Push failure never prevents persistence: in-app
// visibility does not depend on delivery.
type Dispatcher struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	sender        push.Sender
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(users repositories.UserRepository, notifications repositories.NotificationRepository, sender push.Sender) *Dispatcher {
	return &Dispatcher{users: users, notifications: notifications, sender: sender}
}

// Dispatch resolves the recipient, attempts push delivery when a token is
// registered, and writes the notification record regardless of the push
// outcome. Callers do not retry failures.
func (d *Dispatcher) Dispatch(ctx context.Context, intent models.NotificationIntent) (Result, error) {
	user, err := d.users.GetUserByID(ctx, intent.RecipientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Result{}, fmt.Errorf("%w: %s", ErrRecipientNotFound, intent.RecipientID)
		}
		return Result{}, fmt.Errorf("resolving recipient %s: %w", intent.RecipientID, err)
	}

	intent.Sender.AvatarURL = AvatarURL(intent.Sender.Name, intent.Sender.AvatarURL)

	var res Result
	var msgID string
	if user.PushToken != "" {
		msgID, err = d.sender.Send(ctx, user.PushToken, intent.Title, intent.Body, payloadData(intent))
		if err != nil {
			log.Printf("dispatch: push to %s failed: %v", intent.RecipientID, err)
			if errors.Is(err, push.ErrInvalidToken) {
				// Best effort: a failed clear is only logged.
				if cerr := d.users.ClearPushToken(ctx, intent.RecipientID); cerr != nil {
					log.Printf("dispatch: clearing push token for %s: %v", intent.RecipientID, cerr)
				}
			}
		} else {
			res.Delivered = true
		}
	}

	record := &models.NotificationRecord{
		ID:            id.New(),
		RecipientID:   intent.RecipientID,
		Category:      intent.Category,
		Title:         intent.Title,
		Body:          intent.Body,
		Sender:        intent.Sender,
		Target:        intent.Target,
		Extra:         intent.Extra,
		IsRead:        false,
		Delivered:     res.Delivered,
		PushMessageID: msgID,
		Timestamp:     time.Now(),
	}
	if err := d.notifications.CreateNotification(ctx, record); err != nil {
		return res, fmt.Errorf("persisting notification for %s: %w", intent.RecipientID, err)
	}
	res.Persisted = true
	return res, nil
}
