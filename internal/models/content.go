package models

// Typed views over the documents the classification rules care about. These
// are decoded from raw snapshots rather than read with FindOne because the
// change feed hands us the documents already.

// Review represents a review of a place.
type Review struct {
	ID           string   `bson:"id"`
	UserID       string   `bson:"userId"`
	UserName     string   `bson:"userName"`
	UserAvatar   string   `bson:"userAvatar"`
	PlaceID      string   `bson:"placeId"`
	PlaceName    string   `bson:"placeName"`
	PlaceOwnerID string   `bson:"placeOwnerId"`
	Text         string   `bson:"text"`
	Likes        []string `bson:"likes"`
}

// Post represents a user post.
type Post struct {
	ID      string   `bson:"id"`
	UserID  string   `bson:"userId"`
	Text    string   `bson:"text"`
	LikedBy []string `bson:"likedBy"`
}

// Comment represents a comment under a review or a post. ParentCommentID is
// non-empty when the comment is a reply to another comment.
type Comment struct {
	ID              string `bson:"id"`
	UserID          string `bson:"userId"`
	UserName        string `bson:"userName"`
	UserAvatar      string `bson:"userAvatar"`
	Text            string `bson:"text"`
	ParentType      string `bson:"parentType"` // review or post
	ReviewID        string `bson:"reviewId"`
	PostID          string `bson:"postId"`
	ParentCommentID string `bson:"parentCommentId"`
}

// User represents a user profile. The document id doubles as the owner id.
type User struct {
	ID        string   `bson:"_id"`
	Name      string   `bson:"name"`
	AvatarURL string   `bson:"avatarUrl"`
	PushToken string   `bson:"pushToken"`
	Followers []string `bson:"followers"`
}

// ReviewFromDocument builds a typed review view from a raw snapshot.
func ReviewFromDocument(id string, d Document) Review {
	return Review{
		ID:           firstNonEmpty(d.String("id"), id),
		UserID:       d.String("userId"),
		UserName:     d.String("userName"),
		UserAvatar:   d.String("userAvatar"),
		PlaceID:      d.String("placeId"),
		PlaceName:    d.String("placeName"),
		PlaceOwnerID: d.String("placeOwnerId"),
		Text:         d.String("text"),
		Likes:        d.Strings("likes"),
	}
}

// PostFromDocument builds a typed post view from a raw snapshot.
func PostFromDocument(id string, d Document) Post {
	return Post{
		ID:      firstNonEmpty(d.String("id"), id),
		UserID:  d.String("userId"),
		Text:    d.String("text"),
		LikedBy: d.Strings("likedBy"),
	}
}

// CommentFromDocument builds a typed comment view from a raw snapshot.
func CommentFromDocument(id string, d Document) Comment {
	return Comment{
		ID:              firstNonEmpty(d.String("id"), id),
		UserID:          d.String("userId"),
		UserName:        d.String("userName"),
		UserAvatar:      d.String("userAvatar"),
		Text:            d.String("text"),
		ParentType:      d.String("parentType"),
		ReviewID:        d.String("reviewId"),
		PostID:          d.String("postId"),
		ParentCommentID: d.String("parentCommentId"),
	}
}

// UserFromDocument builds a typed user view from a raw snapshot.
func UserFromDocument(id string, d Document) User {
	return User{
		ID:        id,
		Name:      d.String("name"),
		AvatarURL: d.String("avatarUrl"),
		PushToken: d.String("pushToken"),
		Followers: d.Strings("followers"),
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
