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
	"github.com/devconnect/devconnect-api/internal/core/ports"
)

const profilesCollection = "profiles"

// ProfileRepository implements ports.ProfileRepository on MongoDB. All
// list mutations are single FindOneAndUpdate calls returning the post-update
// document, so callers never splice arrays from a stale read.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

// Upsert creates or partially updates the profile keyed by user id.
// Only present fields land in $set; social links use dotted paths so each
// key merges independently instead of replacing the sub-document.
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status": update.Status,
		"skills": update.Skills,
	}
	setIfPresent(set, "company", update.Company)
	setIfPresent(set, "website", update.Website)
	setIfPresent(set, "location", update.Location)
	setIfPresent(set, "bio", update.Bio)
	setIfPresent(set, "githubusername", update.GithubUsername)
	setIfPresent(set, "social.youtube", update.Social.Youtube)
	setIfPresent(set, "social.facebook", update.Social.Facebook)
	setIfPresent(set, "social.twitter", update.Social.Twitter)
	setIfPresent(set, "social.instagram", update.Social.Instagram)
	setIfPresent(set, "social.linkedin", update.Social.Linkedin)

	ops := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"date":       time.Now().UTC(),
			"experience": []domain.Experience{},
			"education":  []domain.Education{},
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var p domain.Profile
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, ops, opts).Decode(&p); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []*domain.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) AddExperience(ctx context.Context, userID string, e domain.Experience) (*domain.Profile, error) {
	e.ID = primitive.NewObjectID().Hex()
	return r.updateOwn(ctx, userID, bson.M{
		"$push": bson.M{"experience": bson.M{"$each": []domain.Experience{e}, "$position": 0}},
	})
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, userID, entryID string) (*domain.Profile, error) {
	return r.updateOwn(ctx, userID, bson.M{
		"$pull": bson.M{"experience": bson.M{"_id": entryID}},
	})
}

func (r *ProfileRepository) AddEducation(ctx context.Context, userID string, e domain.Education) (*domain.Profile, error) {
	e.ID = primitive.NewObjectID().Hex()
	return r.updateOwn(ctx, userID, bson.M{
		"$push": bson.M{"education": bson.M{"$each": []domain.Education{e}, "$position": 0}},
	})
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, userID, entryID string) (*domain.Profile, error) {
	return r.updateOwn(ctx, userID, bson.M{
		"$pull": bson.M{"education": bson.M{"_id": entryID}},
	})
}

// updateOwn applies a targeted list update to the caller's profile and
// returns the updated document. A pull that matches nothing still succeeds
// and returns the unchanged profile.
func (r *ProfileRepository) updateOwn(ctx context.Context, userID string, ops bson.M) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Profile
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, ops, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &p, nil
}

// EnsureIndexes creates the unique one-profile-per-user index.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: indexUnique(),
	})
	return err
}

func setIfPresent(set bson.M, key, value string) {
	if value != "" {
		set[key] = value
	}
}
