package rules

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/placepulse/notifier/internal/models"
)

// Collections the relay watches.
const (
	CollReviews  = "reviews"
	CollPosts    = "posts"
	CollUsers    = "users"
	CollComments = "comments"
)

// ContentResolver looks up the documents a rule needs beyond the change
// snapshots themselves: parent reviews/posts for comments, the comment
// group for reply parents, user profiles for sender display data.
type ContentResolver interface {
	GetReview(ctx context.Context, id string) (*models.Review, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	FindCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// likeRule parametrizes the like rules over their collection, so reviews
// and posts share one code path instead of two copies.
type likeRule struct {
	Collection string
	Field      string
	OwnerField string
	Category   string
	TargetType string
	Title      string
	BodyNoun   string
}

var likeRules = []likeRule{
	{Collection: CollReviews, Field: "likes", OwnerField: "userId", Category: models.CategoryReviewLiked, TargetType: models.TargetReview, Title: "Review liked", BodyNoun: "review"},
	{Collection: CollPosts, Field: "likedBy", OwnerField: "userId", Category: models.CategoryPostLiked, TargetType: models.TargetPost, Title: "Post liked", BodyNoun: "post"},
}

// Engine maps change events to notification intents. All state it needs
// beyond the event is injected: the resolver for lookups and the cache for
// follower deltas.
type Engine struct {
	resolver ContentResolver
	cache    *EngagementCache
}

// NewEngine creates a classification engine.
func NewEngine(resolver ContentResolver, cache *EngagementCache) *Engine {
	return &Engine{resolver: resolver, cache: cache}
}

// Classify produces zero or more intents for a change event. Events that
// match no rule, fail an ownership check, or describe a self-action yield
// nothing.
func (e *Engine) Classify(ctx context.Context, evt models.ChangeEvent) []models.NotificationIntent {
	switch {
	case evt.CollectionPath == CollReviews && evt.Kind == models.ChangeAdded:
		return e.reviewAdded(evt)
	case isCommentCollection(evt.CollectionPath) && evt.Kind == models.ChangeAdded:
		return e.commentAdded(ctx, evt)
	case evt.Kind == models.ChangeModified:
		for _, rule := range likeRules {
			if rule.Collection == evt.CollectionPath {
				return e.engagementGrew(ctx, rule, evt)
			}
		}
		if evt.CollectionPath == CollUsers {
			return e.followerAdded(ctx, evt)
		}
	}
	return nil
}

// isCommentCollection matches the comment collection group: the collection
// itself and any "<parent>_comments" subcollection.
func isCommentCollection(coll string) bool {
	return coll == CollComments || strings.HasSuffix(coll, "_"+CollComments)
}

func (e *Engine) reviewAdded(evt models.ChangeEvent) []models.NotificationIntent {
	review := models.ReviewFromDocument(evt.DocumentID, evt.After)
	if review.PlaceOwnerID == "" || review.PlaceOwnerID == review.UserID {
		return nil
	}

	place := review.PlaceName
	if place == "" {
		place = "your place"
	}
	return []models.NotificationIntent{{
		RecipientID: review.PlaceOwnerID,
		Category:    models.CategoryNewReview,
		Title:       "New review",
		Body:        fmt.Sprintf("%s left a review on %s", displayName(review.UserName), place),
		Sender:      models.Sender{ID: review.UserID, Name: review.UserName, AvatarURL: review.UserAvatar},
		Target: Reconcile(models.Target{
			TargetID:   review.ID,
			TargetType: models.TargetReview,
			PlaceID:    review.PlaceID,
		}),
	}}
}

func (e *Engine) commentAdded(ctx context.Context, evt models.ChangeEvent) []models.NotificationIntent {
	comment := models.CommentFromDocument(evt.DocumentID, evt.After)
	sender := models.Sender{ID: comment.UserID, Name: comment.UserName, AvatarURL: comment.UserAvatar}

	// Reply takes precedence over the plain comment rules.
	if comment.ParentCommentID != "" {
		parent, err := e.resolver.FindCommentByID(ctx, comment.ParentCommentID)
		if err != nil || parent == nil {
			if err != nil {
				log.Printf("rules: resolving reply parent %s: %v", comment.ParentCommentID, err)
			}
			return nil
		}
		if parent.UserID == comment.UserID {
			return nil
		}
		return []models.NotificationIntent{{
			RecipientID: parent.UserID,
			Category:    models.CategoryCommentReplied,
			Title:       "New reply",
			Body:        fmt.Sprintf("%s replied to your comment", displayName(comment.UserName)),
			Sender:      sender,
			Target: Reconcile(models.Target{
				TargetID:   comment.ID,
				TargetType: models.TargetComment,
				ReviewID:   comment.ReviewID,
				PostID:     comment.PostID,
			}),
		}}
	}

	switch {
	case comment.ParentType == models.TargetReview || comment.ReviewID != "":
		review, err := e.resolver.GetReview(ctx, comment.ReviewID)
		if err != nil || review == nil {
			if err != nil {
				log.Printf("rules: resolving review %s for comment: %v", comment.ReviewID, err)
			}
			return nil
		}
		if review.UserID == comment.UserID {
			return nil
		}
		return []models.NotificationIntent{{
			RecipientID: review.UserID,
			Category:    models.CategoryNewComment,
			Title:       "New comment",
			Body:        fmt.Sprintf("%s commented on your review", displayName(comment.UserName)),
			Sender:      sender,
			Target: Reconcile(models.Target{
				TargetID:   review.ID,
				TargetType: models.TargetReview,
				PlaceID:    review.PlaceID,
				CommentID:  comment.ID,
			}),
		}}
	case comment.ParentType == models.TargetPost || comment.PostID != "":
		post, err := e.resolver.GetPost(ctx, comment.PostID)
		if err != nil || post == nil {
			if err != nil {
				log.Printf("rules: resolving post %s for comment: %v", comment.PostID, err)
			}
			return nil
		}
		if post.UserID == comment.UserID {
			return nil
		}
		return []models.NotificationIntent{{
			RecipientID: post.UserID,
			Category:    models.CategoryNewComment,
			Title:       "New comment",
			Body:        fmt.Sprintf("%s commented on your post", displayName(comment.UserName)),
			Sender:      sender,
			Target: Reconcile(models.Target{
				TargetID:   post.ID,
				TargetType: models.TargetPost,
				CommentID:  comment.ID,
			}),
		}}
	}
	return nil
}

func (e *Engine) engagementGrew(ctx context.Context, rule likeRule, evt models.ChangeEvent) []models.NotificationIntent {
	if evt.Before == nil {
		// No before snapshot means growth cannot be established.
		log.Printf("rules: no before snapshot for %s/%s, skipping %s check", evt.CollectionPath, evt.DocumentID, rule.Category)
		return nil
	}

	before := evt.Before.Strings(rule.Field)
	after := evt.After.Strings(rule.Field)
	member, grew := NewMember(before, after)
	if !grew {
		return nil
	}

	owner := evt.After.String(rule.OwnerField)
	if owner == "" || member == owner {
		return nil
	}

	liker, err := e.resolver.GetUser(ctx, member)
	if err != nil || liker == nil {
		if err != nil {
			log.Printf("rules: resolving liker %s: %v", member, err)
		}
		return nil
	}

	targetID := evt.After.String("id")
	if targetID == "" {
		targetID = evt.DocumentID
	}
	target := models.Target{TargetID: targetID, TargetType: rule.TargetType}
	if rule.TargetType == models.TargetReview {
		target.PlaceID = evt.After.String("placeId")
	}

	return []models.NotificationIntent{{
		RecipientID: owner,
		Category:    rule.Category,
		Title:       rule.Title,
		Body:        fmt.Sprintf("%s liked your %s", displayName(liker.Name), rule.BodyNoun),
		Sender:      models.Sender{ID: liker.ID, Name: liker.Name, AvatarURL: liker.AvatarURL},
		Target:      Reconcile(target),
	}}
}

func (e *Engine) followerAdded(ctx context.Context, evt models.ChangeEvent) []models.NotificationIntent {
	userID := evt.DocumentID
	after := evt.After.Strings("followers")

	prev, seen := e.cache.Swap(userID, len(after))
	if !seen {
		// First observation primes the cache; the delta is unknowable.
		return nil
	}
	if len(after) <= prev {
		return nil
	}

	// The feed does not reliably carry before snapshots for user documents,
	// so fall back to insertion order when one is missing.
	var member string
	if evt.Before != nil {
		m, grew := NewMember(evt.Before.Strings("followers"), after)
		if !grew {
			return nil
		}
		member = m
	} else if len(after) > 0 {
		member = after[len(after)-1]
	}
	if member == "" || member == userID {
		return nil
	}

	sender := models.Sender{ID: member}
	if follower, err := e.resolver.GetUser(ctx, member); err == nil && follower != nil {
		sender.Name = follower.Name
		sender.AvatarURL = follower.AvatarURL
	}

	return []models.NotificationIntent{{
		RecipientID: userID,
		Category:    models.CategoryNewFollower,
		Title:       "New follower",
		Body:        fmt.Sprintf("%s started following you", displayName(sender.Name)),
		Sender:      sender,
	}}
}

func displayName(name string) string {
	if name == "" {
		return "Someone"
	}
	return name
}
