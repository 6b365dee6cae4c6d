package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagepulse/internal/model"
)

type responseFixture struct {
	*surveyFixture
	cache *stubSentimentCache
	svc   *ResponseService
}

func newResponseFixture() *responseFixture {
	base := newSurveyFixture()
	cache := newStubSentimentCache()
	return &responseFixture{
		surveyFixture: base,
		cache:         cache,
		svc:           NewResponseService(base.tokenSvc, base.responseRepo, base.surveyRepo, cache),
	}
}

// launchSurvey creates and launches a survey for one employee and returns the
// survey and the employee's token.
func (f *responseFixture) launchSurvey(t *testing.T, questions []model.Question) (*model.Survey, string) {
	t.Helper()
	f.addEmployees(t, "acme", "a@acme.test")

	created, err := f.surveyFixture.svc.Create(context.Background(), "acme", &model.Survey{
		Title:     "Pulse",
		Questions: questions,
	})
	require.NoError(t, err)
	_, err = f.surveyFixture.svc.Launch(context.Background(), created.ID)
	require.NoError(t, err)

	tokens, err := f.tokenSvc.UnusedForSurvey(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	return created, tokens[0].Token
}

func TestSubmitStoresAnonymousResponse(t *testing.T) {
	f := newResponseFixture()
	survey, token := f.launchSurvey(t, []model.Question{
		{Text: "How satisfied?", Type: model.QuestionTypeRatingScale},
	})

	rating := 4
	err := f.svc.Submit(context.Background(), token, []model.Answer{
		{QuestionID: survey.Questions[0].ID, IntValue: &rating},
	})
	require.NoError(t, err)

	responses, err := f.responseRepo.GetBySurveyID(context.Background(), survey.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, survey.ID, responses[0].SurveyID)
	require.Len(t, responses[0].Answers, 1)
	assert.Equal(t, 4, *responses[0].Answers[0].IntValue)
	assert.False(t, responses[0].SubmittedAt.IsZero())

	// The token is consumed and the cached dashboard score is dropped
	err = f.svc.Submit(context.Background(), token, nil)
	assert.ErrorIs(t, err, ErrTokenAlreadyUsed)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestSubmitRollsBackTokenOnStorageFailure(t *testing.T) {
	f := newResponseFixture()
	survey, token := f.launchSurvey(t, nil)

	f.responseRepo.failNext = errors.New("write timeout")
	err := f.svc.Submit(context.Background(), token, nil)
	assert.ErrorIs(t, err, ErrStorage)

	// Nothing stored, token open again, cache untouched
	responses, _ := f.responseRepo.GetBySurveyID(context.Background(), survey.ID)
	assert.Empty(t, responses)
	assert.Equal(t, 0, f.cache.invalidations)

	require.NoError(t, f.svc.Submit(context.Background(), token, nil))
}

func TestSimulateAnswersEveryQuestionPerToken(t *testing.T) {
	f := newResponseFixture()

	options := []string{"Tooling", "Training"}
	survey, _ := f.launchSurvey(t, []model.Question{
		{Text: "Rate it", Type: model.QuestionTypeRatingScale, OrderIndex: 0},
		{Text: "Pick one", Type: model.QuestionTypeMultipleChoice, Options: options, OrderIndex: 1},
		{Text: "Tell us", Type: model.QuestionTypeOpenText, OrderIndex: 2},
	})

	// Two hires after launch; relaunch covers them
	f.addEmployees(t, "acme", "b@acme.test", "c@acme.test")
	_, err := f.surveyFixture.svc.Launch(context.Background(), survey.ID)
	require.NoError(t, err)

	count, err := f.svc.Simulate(context.Background(), survey.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	tokens, _ := f.tokenSvc.UnusedForSurvey(context.Background(), survey.ID)
	assert.Empty(t, tokens)

	responses, err := f.responseRepo.GetBySurveyID(context.Background(), survey.ID)
	require.NoError(t, err)
	require.Len(t, responses, 3)

	for _, response := range responses {
		require.Len(t, response.Answers, 3)
		byQuestion := map[string]model.Answer{}
		for _, answer := range response.Answers {
			byQuestion[answer.QuestionID] = answer
		}

		rating := byQuestion[survey.Questions[0].ID]
		require.NotNil(t, rating.IntValue)
		assert.GreaterOrEqual(t, *rating.IntValue, 1)
		assert.LessOrEqual(t, *rating.IntValue, 5)

		choice := byQuestion[survey.Questions[1].ID]
		require.NotNil(t, choice.TextValue)
		assert.Contains(t, options, *choice.TextValue)

		text := byQuestion[survey.Questions[2].ID]
		require.NotNil(t, text.TextValue)
		assert.Contains(t, samplePhrases, *text.TextValue)
	}
}

func TestSimulateUnknownSurvey(t *testing.T) {
	f := newResponseFixture()

	_, err := f.svc.Simulate(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}
