package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"engagepulse/internal/model"
)

// ResponseRepo handles MongoDB operations for anonymous survey responses.
// Answers are embedded in the response document, so a submission is a single
// atomic insert. The schema has no employee field at all.
type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) (string, error)
	GetBySurveyID(ctx context.Context, surveyID string) ([]*model.Response, error)
	DeleteBySurveyID(ctx context.Context, surveyID string) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("survey_responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.Response) (string, error) {
	response.ID = primitive.NewObjectID().Hex()
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, response); err != nil {
		return "", err
	}
	return response.ID, nil
}

func (r *responseRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) DeleteBySurveyID(ctx context.Context, surveyID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	return err
}
