package models

import "time"

// Notification categories. The set is open-ended; these are the ones the
// classification rules and the API produce.
const (
	CategoryNewReview      = "new_review"
	CategoryNewComment     = "new_comment"
	CategoryCommentReplied = "comment_replied"
	CategoryReviewLiked    = "review_liked"
	CategoryPostLiked      = "post_liked"
	CategoryNewFollower    = "new_follower"
	CategoryTest           = "test"
)

// Target types for the canonical target of a notification.
const (
	TargetPost    = "post"
	TargetPlace   = "place"
	TargetReview  = "review"
	TargetComment = "comment"
)

// Target is the canonical identification of the document a notification is
// about. Exactly one of the typed ids should be non-empty and equal to
// TargetID; unset ids are empty strings, never absent, so the persisted and
// pushed forms stay shape-stable.
type Target struct {
	TargetID   string `json:"target_id" bson:"target_id"`
	TargetType string `json:"target_type" bson:"target_type"`
	PostID     string `json:"post_id" bson:"post_id"`
	PlaceID    string `json:"place_id" bson:"place_id"`
	ReviewID   string `json:"review_id" bson:"review_id"`
	CommentID  string `json:"comment_id" bson:"comment_id"`
}

// Sender identifies the user whose action caused a notification.
type Sender struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	AvatarURL string `json:"avatar_url" bson:"avatar_url"`
}

// NotificationIntent is the unit handed from classification to dispatch.
type NotificationIntent struct {
	RecipientID string
	Category    string
	Title       string
	Body        string
	Sender      Sender
	Target      Target
	Extra       map[string]interface{}
}

// NotificationRecord is the persisted form of a dispatched intent. Created
// once by the dispatch pipeline; only an external mark-as-read path mutates
// it afterwards.
type NotificationRecord struct {
	ID            string                 `json:"id" bson:"_id"`
	RecipientID   string                 `json:"recipient_id" bson:"recipient_id"`
	Category      string                 `json:"category" bson:"category"`
	Title         string                 `json:"title" bson:"title"`
	Body          string                 `json:"body" bson:"body"`
	Sender        Sender                 `json:"sender" bson:"sender"`
	Target        Target                 `json:"target" bson:"target"`
	Extra         map[string]interface{} `json:"extra,omitempty" bson:"extra,omitempty"`
	IsRead        bool                   `json:"is_read" bson:"is_read"`
	Delivered     bool                   `json:"delivered" bson:"delivered"`
	PushMessageID string                 `json:"push_message_id" bson:"push_message_id"`
	Timestamp     time.Time              `json:"timestamp" bson:"timestamp"`
}
