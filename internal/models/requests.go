package models

// RegisterTokenRequest defines the request body for registering a push token
type RegisterTokenRequest struct {
	UserID    string `json:"userId" validate:"required"`
	PushToken string `json:"pushToken" validate:"required"`
}

// SendNotificationRequest defines the request body for sending a notification
type SendNotificationRequest struct {
	ToUserID     string                 `json:"toUserId" validate:"required"`
	Type         string                 `json:"type" validate:"required"`
	Title        string                 `json:"title" validate:"required"`
	Body         string                 `json:"body" validate:"required"`
	SenderID     string                 `json:"senderId,omitempty"`
	SenderName   string                 `json:"senderName,omitempty"`
	SenderAvatar string                 `json:"senderAvatar,omitempty"`
	TargetID     string                 `json:"targetId,omitempty"`
	TargetType   string                 `json:"targetType,omitempty"`
	PostID       string                 `json:"postId,omitempty"`
	PlaceID      string                 `json:"placeId,omitempty"`
	ReviewID     string                 `json:"reviewId,omitempty"`
	CommentID    string                 `json:"commentId,omitempty"`
	ExtraData    map[string]interface{} `json:"extraData,omitempty"`
}

// TestNotificationRequest defines the request body for sending a test notification
type TestNotificationRequest struct {
	UserID string `json:"userId" validate:"required"`
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
}
