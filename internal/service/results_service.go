package service

import (
	"context"
	"log"
	"strconv"

	"engagepulse/internal/cache"
	"engagepulse/internal/model"
	"engagepulse/internal/repository"
)

// ResultsService aggregates anonymous responses into per-question statistics
// and the company-wide sentiment score the dashboard consumes.
type ResultsService struct {
	surveyRepo     repository.SurveyRepo
	responseRepo   repository.ResponseRepo
	sentimentCache cache.SentimentCache
}

// NewResultsService creates a new results service
func NewResultsService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo, sentimentCache cache.SentimentCache) *ResultsService {
	return &ResultsService{
		surveyRepo:     surveyRepo,
		responseRepo:   responseRepo,
		sentimentCache: sentimentCache,
	}
}

// ResultsFor computes the aggregate for one survey. Multiple-choice values
// outside the declared option set are counted under their own key rather
// than rejected.
func (s *ResultsService) ResultsFor(ctx context.Context, surveyID string) (*model.SurveyResult, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, storageErr(err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	responses, err := s.responseRepo.GetBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, storageErr(err)
	}

	// Flatten answers per question id
	answersByQuestion := make(map[string][]model.Answer)
	for _, response := range responses {
		for _, answer := range response.Answers {
			answersByQuestion[answer.QuestionID] = append(answersByQuestion[answer.QuestionID], answer)
		}
	}

	questionResults := make([]model.QuestionResult, 0, len(survey.Questions))
	for _, question := range survey.Questions {
		questionResults = append(questionResults, aggregateQuestion(question, answersByQuestion[question.ID]))
	}

	return &model.SurveyResult{
		SurveyID:       survey.ID,
		Title:          survey.Title,
		Description:    survey.Description,
		TotalResponses: len(responses),
		Questions:      questionResults,
	}, nil
}

func aggregateQuestion(question model.Question, answers []model.Answer) model.QuestionResult {
	result := model.QuestionResult{
		QuestionID: question.ID,
		Text:       question.Text,
		Type:       question.Type,
	}

	switch question.Type {
	case model.QuestionTypeRatingScale:
		distribution := make(map[string]int, 5)
		for i := 1; i <= 5; i++ {
			distribution[strconv.Itoa(i)] = 0
		}
		sum, count := 0, 0
		for _, answer := range answers {
			if answer.IntValue == nil {
				continue
			}
			sum += *answer.IntValue
			count++
			distribution[strconv.Itoa(*answer.IntValue)]++
		}
		if count > 0 {
			result.AverageRating = float64(sum) / float64(count)
		}
		result.AnswerDistribution = distribution

	case model.QuestionTypeMultipleChoice:
		distribution := make(map[string]int, len(question.Options))
		for _, option := range question.Options {
			distribution[option] = 0
		}
		for _, answer := range answers {
			if answer.TextValue == nil {
				continue
			}
			distribution[*answer.TextValue]++
		}
		result.AnswerDistribution = distribution

	case model.QuestionTypeOpenText:
		texts := []string{}
		for _, answer := range answers {
			if answer.TextValue != nil && *answer.TextValue != "" {
				texts = append(texts, *answer.TextValue)
			}
		}
		result.TextAnswers = texts
	}

	return result
}

// CompanySentimentScore returns the mean of all rating answers on the
// company's most recent ACTIVE or CLOSED survey, or nil when there is no
// such survey or no rating answers. Nil is meaningful downstream; it is
// never collapsed to a numeric placeholder.
func (s *ResultsService) CompanySentimentScore(ctx context.Context, companyID string) (*float64, error) {
	if s.sentimentCache != nil {
		if score, ok, err := s.sentimentCache.Get(ctx, companyID); err == nil && ok {
			return score, nil
		} else if err != nil {
			log.Printf("Sentiment cache read failed for company %s: %v", companyID, err)
		}
	}

	score, err := s.computeSentimentScore(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if s.sentimentCache != nil {
		if err := s.sentimentCache.Set(ctx, companyID, score); err != nil {
			log.Printf("Sentiment cache write failed for company %s: %v", companyID, err)
		}
	}
	return score, nil
}

func (s *ResultsService) computeSentimentScore(ctx context.Context, companyID string) (*float64, error) {
	surveys, err := s.surveyRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, storageErr(err)
	}

	// Most recent measurable survey: ids are creation-ordered, so the
	// largest id among ACTIVE/CLOSED surveys is the newest one.
	var latest *model.Survey
	for _, survey := range surveys {
		if survey.Status != model.SurveyStatusActive && survey.Status != model.SurveyStatusClosed {
			continue
		}
		if latest == nil || survey.ID > latest.ID {
			latest = survey
		}
	}
	if latest == nil {
		return nil, nil
	}

	responses, err := s.responseRepo.GetBySurveyID(ctx, latest.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	if len(responses) == 0 {
		return nil, nil
	}

	ratingQuestions := make(map[string]bool, len(latest.Questions))
	for _, question := range latest.Questions {
		if question.Type == model.QuestionTypeRatingScale {
			ratingQuestions[question.ID] = true
		}
	}

	sum, count := 0, 0
	for _, response := range responses {
		for _, answer := range response.Answers {
			if ratingQuestions[answer.QuestionID] && answer.IntValue != nil {
				sum += *answer.IntValue
				count++
			}
		}
	}
	if count == 0 {
		return nil, nil
	}

	score := float64(sum) / float64(count)
	return &score, nil
}
