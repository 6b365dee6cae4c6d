package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagepulse/internal/model"
)

type surveyFixture struct {
	surveyRepo   *stubSurveyRepo
	employeeRepo *stubEmployeeRepo
	responseRepo *stubResponseRepo
	tokenRepo    *stubTokenRepo
	tokenSvc     *TokenService
	svc          *SurveyService
}

func newSurveyFixture() *surveyFixture {
	f := &surveyFixture{
		surveyRepo:   newStubSurveyRepo(),
		employeeRepo: newStubEmployeeRepo(),
		responseRepo: newStubResponseRepo(),
		tokenRepo:    newStubTokenRepo(),
	}
	f.tokenSvc = NewTokenService(f.tokenRepo)
	f.svc = NewSurveyService(f.surveyRepo, f.employeeRepo, f.responseRepo, f.tokenSvc)
	return f
}

func (f *surveyFixture) addEmployees(t *testing.T, companyID string, emails ...string) {
	t.Helper()
	for _, email := range emails {
		_, err := f.employeeRepo.Create(context.Background(), &model.Employee{
			CompanyID: companyID,
			Email:     email,
		})
		require.NoError(t, err)
	}
}

func TestCreateForcesDraftAndOrdersQuestions(t *testing.T) {
	f := newSurveyFixture()

	created, err := f.svc.Create(context.Background(), "acme", &model.Survey{
		Title:  "Pulse",
		Status: model.SurveyStatusActive, // caller cannot skip DRAFT
		Questions: []model.Question{
			{Text: "second", Type: model.QuestionTypeOpenText, OrderIndex: 1},
			{Text: "first", Type: model.QuestionTypeRatingScale, OrderIndex: 0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.SurveyStatusDraft, created.Status)
	assert.Equal(t, "acme", created.CompanyID)
	assert.NotEmpty(t, created.ID)
	require.Len(t, created.Questions, 2)
	assert.Equal(t, "first", created.Questions[0].Text)
	assert.Equal(t, "second", created.Questions[1].Text)
	assert.NotEmpty(t, created.Questions[0].ID)

	fetched, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", fetched.Questions[0].Text)
}

func TestGetUnknownSurvey(t *testing.T) {
	f := newSurveyFixture()

	_, err := f.svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestLaunchIssuesTokensAndActivates(t *testing.T) {
	f := newSurveyFixture()
	f.addEmployees(t, "acme", "a@acme.test", "b@acme.test")

	created, err := f.svc.Create(context.Background(), "acme", &model.Survey{Title: "Pulse"})
	require.NoError(t, err)

	launched, err := f.svc.Launch(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyStatusActive, launched.Status)

	tokens, err := f.tokenSvc.UnusedForSurvey(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)

	// Relaunch after a hire issues only the missing token
	f.addEmployees(t, "acme", "c@acme.test")
	launched, err = f.svc.Launch(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyStatusActive, launched.Status)

	tokens, err = f.tokenSvc.UnusedForSurvey(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 3)
}

func TestLaunchClosedSurveyFails(t *testing.T) {
	f := newSurveyFixture()

	created, err := f.svc.Create(context.Background(), "acme", &model.Survey{Title: "Pulse"})
	require.NoError(t, err)
	_, err = f.svc.Launch(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = f.svc.Close(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = f.svc.Launch(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCloseTransitions(t *testing.T) {
	f := newSurveyFixture()

	created, err := f.svc.Create(context.Background(), "acme", &model.Survey{Title: "Pulse"})
	require.NoError(t, err)

	// DRAFT cannot close
	_, err = f.svc.Close(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Launch(context.Background(), created.ID)
	require.NoError(t, err)

	closed, err := f.svc.Close(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyStatusClosed, closed.Status)

	// Closing again is a no-op
	closed, err = f.svc.Close(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyStatusClosed, closed.Status)
}

func TestDeleteRemovesTokensAndResponses(t *testing.T) {
	f := newSurveyFixture()
	f.addEmployees(t, "acme", "a@acme.test")

	created, err := f.svc.Create(context.Background(), "acme", &model.Survey{Title: "Pulse"})
	require.NoError(t, err)
	_, err = f.svc.Launch(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = f.responseRepo.Create(context.Background(), &model.Response{SurveyID: created.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))

	_, err = f.svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
	tokens, _ := f.tokenSvc.UnusedForSurvey(context.Background(), created.ID)
	assert.Empty(t, tokens)
	responses, _ := f.responseRepo.GetBySurveyID(context.Background(), created.ID)
	assert.Empty(t, responses)
}
