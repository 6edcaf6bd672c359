package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

const postsCollection = "posts"

// PostRepository implements ports.PostRepository on MongoDB. Like and
// comment mutations are conditional single-document updates: the membership
// check rides in the query filter, so a concurrent duplicate like or a
// double unlike resolves at the store rather than in a read-check-write
// round trip.
type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

func (r *PostRepository) Insert(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddLike prepends a like entry, guarded by a filter that excludes posts
// already liked by this user. When the filter matches nothing, the post is
// fetched once more to distinguish "gone" from "already liked".
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	like := domain.Like{ID: primitive.NewObjectID().Hex(), UserID: userID}

	filter := bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"likes": bson.M{"$each": []domain.Like{like}, "$position": 0}},
	}

	updated, err := r.findOneAndUpdate(ctx, filter, update)
	if err == nil {
		return updated.Likes, nil
	}
	if !errors.Is(err, domain.ErrPostNotFound) {
		return nil, err
	}
	if _, findErr := r.FindByID(ctx, postID); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrAlreadyLiked
}

// RemoveLike pulls the user's like entry, guarded by a filter requiring the
// entry to exist.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	filter := bson.M{"_id": postID, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}

	updated, err := r.findOneAndUpdate(ctx, filter, update)
	if err == nil {
		return updated.Likes, nil
	}
	if !errors.Is(err, domain.ErrPostNotFound) {
		return nil, err
	}
	if _, findErr := r.FindByID(ctx, postID); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrNotLiked
}

func (r *PostRepository) AddComment(ctx context.Context, postID string, c domain.Comment) ([]domain.Comment, error) {
	c.ID = primitive.NewObjectID().Hex()

	update := bson.M{
		"$push": bson.M{"comments": bson.M{"$each": []domain.Comment{c}, "$position": 0}},
	}
	updated, err := r.findOneAndUpdate(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		return nil, err
	}
	return updated.Comments, nil
}

// RemoveComment pulls the comment by id — keyed removal, no index lookup.
func (r *PostRepository) RemoveComment(ctx context.Context, postID, commentID string) ([]domain.Comment, error) {
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	updated, err := r.findOneAndUpdate(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		return nil, err
	}
	return updated.Comments, nil
}

func (r *PostRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Post
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &p, nil
}

// EnsureIndexes creates the feed sort index.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	return err
}
