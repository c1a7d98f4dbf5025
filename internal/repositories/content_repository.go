package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placepulse/notifier/internal/models"
)

// ContentRepository looks up the content documents the classification rules
// need: parent reviews and posts for comments, reply parents across the
// comment group, and user profiles for sender display data. It satisfies
// rules.ContentResolver.
type ContentRepository struct {
	db *mongo.Database
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{db: db}
}

// GetReview retrieves a review by id
func (r *ContentRepository) GetReview(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Collection("reviews").FindOne(ctx, idFilter(id)).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up review %s: %w", id, err)
	}
	return &review, nil
}

// GetPost retrieves a post by id
func (r *ContentRepository) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Collection("posts").FindOne(ctx, idFilter(id)).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up post %s: %w", id, err)
	}
	return &post, nil
}

// GetUser retrieves a user profile by id
func (r *ContentRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up user %s: %w", id, err)
	}
	return &user, nil
}

// FindCommentByID scans the comment collection group for a document whose
// id field equals the given id. Matching on a field rather than the
// document key is fragile under duplicate ids; the first match wins.
func (r *ContentRepository) FindCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	names, err := r.db.ListCollectionNames(ctx, bson.M{
		"name": bson.M{"$regex": "(^|_)comments$"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing comment collections: %w", err)
	}

	for _, name := range names {
		var comment models.Comment
		err := r.db.Collection(name).FindOne(ctx, bson.M{"id": id}).Decode(&comment)
		if err == nil {
			return &comment, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("scanning %s for comment %s: %w", name, id, err)
		}
	}
	return nil, ErrNotFound
}

// idFilter matches a document either by key or by its embedded id field,
// since feed-written content carries both forms.
func idFilter(id string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"_id": id},
		bson.M{"id": id},
	}}
}
