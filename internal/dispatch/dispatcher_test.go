package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placepulse/notifier/internal/models"
	"github.com/placepulse/notifier/internal/push"
	"github.com/placepulse/notifier/internal/repositories"
)

type fakeUserRepo struct {
	users   map[string]*models.User
	cleared []string
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) SetPushToken(_ context.Context, userID, token string) error {
	if f.users == nil {
		f.users = map[string]*models.User{}
	}
	f.users[userID] = &models.User{ID: userID, PushToken: token}
	return nil
}

func (f *fakeUserRepo) ClearPushToken(_ context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

type fakeNotificationRepo struct {
	records   []*models.NotificationRecord
	createErr error
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, record *models.NotificationRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(_ context.Context, recipientID string, page, limit int64) ([]models.NotificationRecord, int64, error) {
	var out []models.NotificationRecord
	for _, r := range f.records {
		if r.RecipientID == recipientID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, recipientID string) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.RecipientID == recipientID && !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, id string) error {
	for _, r := range f.records {
		if r.ID == id {
			r.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, recipientID string) error {
	for _, r := range f.records {
		if r.RecipientID == recipientID {
			r.IsRead = true
		}
	}
	return nil
}

type stubSender struct {
	msgID    string
	err      error
	sends    int
	lastData map[string]string
}

func (s *stubSender) Send(_ context.Context, token, title, body string, data map[string]string) (string, error) {
	s.sends++
	s.lastData = data
	if s.err != nil {
		return "", s.err
	}
	return s.msgID, nil
}

func testIntent(recipient string) models.NotificationIntent {
	return models.NotificationIntent{
		RecipientID: recipient,
		Category:    models.CategoryReviewLiked,
		Title:       "Review liked",
		Body:        "Cara liked your review",
		Sender:      models.Sender{ID: "u3", Name: "Cara"},
		Target:      models.Target{TargetID: "r1", TargetType: models.TargetReview, ReviewID: "r1"},
	}
}

func TestDispatchDeliversAndPersists(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1", PushToken: "tok"}}}
	notifs := &fakeNotificationRepo{}
	sender := &stubSender{msgID: "fcm-123"}
	d := NewDispatcher(users, notifs, sender)

	res, err := d.Dispatch(context.Background(), testIntent("u1"))

	require.NoError(t, err)
	assert.True(t, res.Delivered)
	assert.True(t, res.Persisted)
	require.Len(t, notifs.records, 1)
	record := notifs.records[0]
	assert.Equal(t, "fcm-123", record.PushMessageID)
	assert.True(t, record.Delivered)
	assert.False(t, record.IsRead)
	assert.Len(t, record.ID, 26)
	assert.False(t, record.Timestamp.IsZero())
}

func TestDispatchPersistsEvenWhenPushFails(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1", PushToken: "tok"}}}
	notifs := &fakeNotificationRepo{}
	sender := &stubSender{err: errors.New("transport down")}
	d := NewDispatcher(users, notifs, sender)

	res, err := d.Dispatch(context.Background(), testIntent("u1"))

	require.NoError(t, err)
	assert.False(t, res.Delivered)
	assert.True(t, res.Persisted)
	require.Len(t, notifs.records, 1)
	assert.False(t, notifs.records[0].Delivered)
	assert.Empty(t, notifs.records[0].PushMessageID)
}

func TestDispatchWritesNothingForMissingRecipient(t *testing.T) {
	users := &fakeUserRepo{}
	notifs := &fakeNotificationRepo{}
	sender := &stubSender{msgID: "fcm-123"}
	d := NewDispatcher(users, notifs, sender)

	res, err := d.Dispatch(context.Background(), testIntent("ghost"))

	require.ErrorIs(t, err, ErrRecipientNotFound)
	assert.False(t, res.Delivered)
	assert.False(t, res.Persisted)
	assert.Empty(t, notifs.records)
	assert.Zero(t, sender.sends)
}

func TestDispatchSkipsPushWithoutToken(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1"}}}
	notifs := &fakeNotificationRepo{}
	sender := &stubSender{msgID: "fcm-123"}
	d := NewDispatcher(users, notifs, sender)

	res, err := d.Dispatch(context.Background(), testIntent("u1"))

	require.NoError(t, err)
	assert.False(t, res.Delivered)
	assert.True(t, res.Persisted)
	assert.Zero(t, sender.sends)
}

func TestDispatchClearsInvalidToken(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1", PushToken: "stale"}}}
	notifs := &fakeNotificationRepo{}
	sender := &stubSender{err: push.ErrInvalidToken}
	d := NewDispatcher(users, notifs, sender)

	res, err := d.Dispatch(context.Background(), testIntent("u1"))

	require.NoError(t, err)
	assert.False(t, res.Delivered)
	assert.True(t, res.Persisted)
	assert.Equal(t, []string{"u1"}, users.cleared)
}

func TestDispatchAppliesAvatarFallback(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1", PushToken: "tok"}}}
	notifs := &fakeNotificationRepo{}
	sender := &stubSender{msgID: "fcm-123"}
	d := NewDispatcher(users, notifs, sender)

	_, err := d.Dispatch(context.Background(), testIntent("u1"))

	require.NoError(t, err)
	require.Len(t, notifs.records, 1)
	assert.Equal(t, "https://ui-avatars.com/api/?name=C&size=128", notifs.records[0].Sender.AvatarURL)
	assert.Equal(t, "https://ui-avatars.com/api/?name=C&size=128", sender.lastData["senderAvatar"])
}

func TestDispatchReportsPersistFailure(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1", PushToken: "tok"}}}
	notifs := &fakeNotificationRepo{createErr: errors.New("store down")}
	sender := &stubSender{msgID: "fcm-123"}
	d := NewDispatcher(users, notifs, sender)

	res, err := d.Dispatch(context.Background(), testIntent("u1"))

	require.Error(t, err)
	assert.True(t, res.Delivered)
	assert.False(t, res.Persisted)
}
