package repository

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"engagepulse/internal/model"
)

// SurveyRepo handles MongoDB operations for surveys. Questions are embedded
// in the survey document, so survey+questions creation is a single atomic
// insert.
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.Survey) (string, error)
	GetByID(ctx context.Context, id string) (*model.Survey, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]*model.Survey, error)
	UpdateStatus(ctx context.Context, id string, status model.SurveyStatus) error
	Delete(ctx context.Context, id string) error
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection("surveys"),
	}
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.Survey) (string, error) {
	// Ids are allocated here; ObjectID hex strings are creation-ordered,
	// which the sentiment query relies on.
	survey.ID = primitive.NewObjectID().Hex()
	survey.CreatedAt = time.Now()
	for i := range survey.Questions {
		if survey.Questions[i].ID == "" {
			survey.Questions[i].ID = primitive.NewObjectID().Hex()
		}
	}

	if _, err := r.collection.InsertOne(ctx, survey); err != nil {
		return "", err
	}
	return survey.ID, nil
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sortQuestions(&survey)
	return &survey, nil
}

func (r *surveyRepo) GetByCompanyID(ctx context.Context, companyID string) ([]*model.Survey, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"companyId": companyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []*model.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	for _, s := range surveys {
		sortQuestions(s)
	}
	return surveys, nil
}

func (r *surveyRepo) UpdateStatus(ctx context.Context, id string, status model.SurveyStatus) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	return err
}

func (r *surveyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// sortQuestions orders questions by orderIndex for presentation
func sortQuestions(s *model.Survey) {
	sort.SliceStable(s.Questions, func(i, j int) bool {
		return s.Questions[i].OrderIndex < s.Questions[j].OrderIndex
	})
}
