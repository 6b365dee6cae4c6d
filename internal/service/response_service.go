package service

import (
	"context"
	"log"
	"math/rand"

	"engagepulse/internal/cache"
	"engagepulse/internal/model"
	"engagepulse/internal/repository"
)

// samplePhrases feed the response simulator's OPEN_TEXT answers
var samplePhrases = []string{
	"I feel supported in my role.",
	"Communication could be better.",
	"Great team atmosphere!",
	"Need more resources for the project.",
	"Satisfied with the current direction.",
	"Work-life balance is good.",
	"More training opportunities would be nice.",
}

// ResponseService records anonymous submissions. It knows tokens only
// through the redeemer; the stored response never sees the employee side.
type ResponseService struct {
	tokenSvc       *TokenService
	responseRepo   repository.ResponseRepo
	surveyRepo     repository.SurveyRepo
	sentimentCache cache.SentimentCache
}

// NewResponseService creates a new response service
func NewResponseService(tokenSvc *TokenService, responseRepo repository.ResponseRepo, surveyRepo repository.SurveyRepo, sentimentCache cache.SentimentCache) *ResponseService {
	return &ResponseService{
		tokenSvc:       tokenSvc,
		responseRepo:   responseRepo,
		surveyRepo:     surveyRepo,
		sentimentCache: sentimentCache,
	}
}

// Submit redeems the token and records one response for the resolved survey.
// Redeem-and-record leaves no observable partial state: if the response
// insert fails the claim is rolled back. Answers are stored as given; the
// survey-taking flow tolerates missing required answers and off-vocabulary
// choice values.
func (s *ResponseService) Submit(ctx context.Context, tokenString string, answers []model.Answer) error {
	surveyID, err := s.tokenSvc.Redeem(ctx, tokenString)
	if err != nil {
		return err
	}

	response := &model.Response{
		SurveyID: surveyID,
		Answers:  answers,
	}
	if _, err := s.responseRepo.Create(ctx, response); err != nil {
		if relErr := s.tokenSvc.Unredeem(ctx, tokenString); relErr != nil {
			log.Printf("Failed to release token after response insert failure: %v", relErr)
		}
		return storageErr(err)
	}

	// The dashboard score for the owning company is stale now
	if survey, err := s.surveyRepo.GetByID(ctx, surveyID); err == nil && survey != nil {
		if s.sentimentCache != nil {
			if err := s.sentimentCache.Invalidate(ctx, survey.CompanyID); err != nil {
				log.Printf("Failed to invalidate sentiment cache for company %s: %v", survey.CompanyID, err)
			}
		}
	}
	return nil
}

// Simulate produces one plausible submission per unused token, through the
// production Submit path. Demo and smoke-test helper, not a core operation.
func (s *ResponseService) Simulate(ctx context.Context, surveyID string) (int, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return 0, storageErr(err)
	}
	if survey == nil {
		return 0, ErrSurveyNotFound
	}

	tokens, err := s.tokenSvc.UnusedForSurvey(ctx, surveyID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, token := range tokens {
		answers := make([]model.Answer, 0, len(survey.Questions))
		for _, question := range survey.Questions {
			answers = append(answers, simulateAnswer(question))
		}
		if err := s.Submit(ctx, token.Token, answers); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func simulateAnswer(question model.Question) model.Answer {
	answer := model.Answer{QuestionID: question.ID}

	switch question.Type {
	case model.QuestionTypeRatingScale:
		// Biased towards 3-5 for realism
		var rating int
		if rand.Intn(10) < 2 {
			rating = rand.Intn(2) + 1
		} else {
			rating = rand.Intn(3) + 3
		}
		answer.IntValue = &rating
	case model.QuestionTypeMultipleChoice:
		if len(question.Options) > 0 {
			option := question.Options[rand.Intn(len(question.Options))]
			answer.TextValue = &option
		}
	case model.QuestionTypeOpenText:
		phrase := samplePhrases[rand.Intn(len(samplePhrases))]
		answer.TextValue = &phrase
	}
	return answer
}
