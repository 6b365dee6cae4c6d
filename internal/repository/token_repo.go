package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"engagepulse/internal/model"
)

// TokenRepo handles MongoDB operations for survey access tokens. Duplicate
// issuance is prevented by a unique index on (surveyId, employeeId), and the
// single-use guarantee by a conditional update on used=false; both are
// enforced by the storage engine, not read-then-write checks.
type TokenRepo interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, token *model.AccessToken) (bool, error)
	GetByToken(ctx context.Context, token string) (*model.AccessToken, error)
	ClaimUnused(ctx context.Context, token string, now time.Time) (*model.AccessToken, error)
	Release(ctx context.Context, token string) error
	GetUnusedBySurveyID(ctx context.Context, surveyID string) ([]*model.AccessToken, error)
	DeleteBySurveyID(ctx context.Context, surveyID string) error
}

type tokenRepo struct {
	collection *mongo.Collection
}

// NewTokenRepo creates a new token repository
func NewTokenRepo(db *mongo.Database) TokenRepo {
	return &tokenRepo{
		collection: db.Collection("survey_tokens"),
	}
}

func (r *tokenRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "surveyId", Value: 1}, {Key: "employeeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// Insert stores one token. Returns false without error when the employee
// already holds a token for the survey (duplicate key on the unique index).
func (r *tokenRepo) Insert(ctx context.Context, token *model.AccessToken) (bool, error) {
	token.ID = primitive.NewObjectID().Hex()

	_, err := r.collection.InsertOne(ctx, token)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *tokenRepo) GetByToken(ctx context.Context, token string) (*model.AccessToken, error) {
	var t model.AccessToken
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ClaimUnused atomically flips used=false to used=true for a live token.
// Exactly one concurrent caller can win; everyone else gets nil.
func (r *tokenRepo) ClaimUnused(ctx context.Context, token string, now time.Time) (*model.AccessToken, error) {
	filter := bson.M{
		"token":     token,
		"used":      false,
		"expiresAt": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{"used": true}}

	var t model.AccessToken
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Release undoes a claim; used only to roll back when recording the response
// fails after the token was claimed.
func (r *tokenRepo) Release(ctx context.Context, token string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"token": token}, bson.M{"$set": bson.M{"used": false}})
	return err
}

func (r *tokenRepo) GetUnusedBySurveyID(ctx context.Context, surveyID string) ([]*model.AccessToken, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID, "used": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tokens []*model.AccessToken
	if err := cursor.All(ctx, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *tokenRepo) DeleteBySurveyID(ctx context.Context, surveyID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	return err
}
