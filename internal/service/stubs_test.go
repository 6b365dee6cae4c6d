package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"engagepulse/internal/model"
)

// In-memory repository doubles for service tests. They reproduce the storage
// contracts the services rely on: unique (surveyId, employeeId) issuance,
// conditional single-use claims, and creation-ordered ids.

type stubSurveyRepo struct {
	surveys map[string]*model.Survey
	nextID  int
}

func newStubSurveyRepo() *stubSurveyRepo {
	return &stubSurveyRepo{surveys: map[string]*model.Survey{}}
}

func (r *stubSurveyRepo) allocID() string {
	r.nextID++
	return fmt.Sprintf("%024d", r.nextID)
}

func (r *stubSurveyRepo) Create(_ context.Context, survey *model.Survey) (string, error) {
	survey.ID = r.allocID()
	survey.CreatedAt = time.Now()
	for i := range survey.Questions {
		if survey.Questions[i].ID == "" {
			survey.Questions[i].ID = r.allocID()
		}
	}
	copied := *survey
	copied.Questions = append([]model.Question(nil), survey.Questions...)
	r.surveys[survey.ID] = &copied
	return survey.ID, nil
}

func (r *stubSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	survey, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	copied := *survey
	copied.Questions = append([]model.Question(nil), survey.Questions...)
	sort.SliceStable(copied.Questions, func(i, j int) bool {
		return copied.Questions[i].OrderIndex < copied.Questions[j].OrderIndex
	})
	return &copied, nil
}

func (r *stubSurveyRepo) GetByCompanyID(ctx context.Context, companyID string) ([]*model.Survey, error) {
	ids := make([]string, 0, len(r.surveys))
	for id, survey := range r.surveys {
		if survey.CompanyID == companyID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]*model.Survey, 0, len(ids))
	for _, id := range ids {
		survey, _ := r.GetByID(ctx, id)
		out = append(out, survey)
	}
	return out, nil
}

func (r *stubSurveyRepo) UpdateStatus(_ context.Context, id string, status model.SurveyStatus) error {
	if survey, ok := r.surveys[id]; ok {
		survey.Status = status
	}
	return nil
}

func (r *stubSurveyRepo) Delete(_ context.Context, id string) error {
	delete(r.surveys, id)
	return nil
}

type stubTokenRepo struct {
	tokens map[string]*model.AccessToken
	nextID int
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: map[string]*model.AccessToken{}}
}

func (r *stubTokenRepo) EnsureIndexes(context.Context) error { return nil }

func (r *stubTokenRepo) Insert(_ context.Context, token *model.AccessToken) (bool, error) {
	for _, existing := range r.tokens {
		if existing.SurveyID == token.SurveyID && existing.EmployeeID == token.EmployeeID {
			return false, nil
		}
	}
	if _, dup := r.tokens[token.Token]; dup {
		return false, nil
	}
	r.nextID++
	token.ID = fmt.Sprintf("tok%021d", r.nextID)
	copied := *token
	r.tokens[token.Token] = &copied
	return true, nil
}

func (r *stubTokenRepo) GetByToken(_ context.Context, token string) (*model.AccessToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *stubTokenRepo) ClaimUnused(_ context.Context, token string, now time.Time) (*model.AccessToken, error) {
	t, ok := r.tokens[token]
	if !ok || t.Used || !t.ExpiresAt.After(now) {
		return nil, nil
	}
	t.Used = true
	copied := *t
	return &copied, nil
}

func (r *stubTokenRepo) Release(_ context.Context, token string) error {
	if t, ok := r.tokens[token]; ok {
		t.Used = false
	}
	return nil
}

func (r *stubTokenRepo) GetUnusedBySurveyID(_ context.Context, surveyID string) ([]*model.AccessToken, error) {
	keys := make([]string, 0, len(r.tokens))
	for key, t := range r.tokens {
		if t.SurveyID == surveyID && !t.Used {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	out := make([]*model.AccessToken, 0, len(keys))
	for _, key := range keys {
		copied := *r.tokens[key]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *stubTokenRepo) DeleteBySurveyID(_ context.Context, surveyID string) error {
	for key, t := range r.tokens {
		if t.SurveyID == surveyID {
			delete(r.tokens, key)
		}
	}
	return nil
}

type stubResponseRepo struct {
	responses []*model.Response
	nextID    int
	failNext  error
}

func newStubResponseRepo() *stubResponseRepo {
	return &stubResponseRepo{}
}

func (r *stubResponseRepo) Create(_ context.Context, response *model.Response) (string, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return "", err
	}
	r.nextID++
	response.ID = fmt.Sprintf("resp%020d", r.nextID)
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}
	copied := *response
	copied.Answers = append([]model.Answer(nil), response.Answers...)
	r.responses = append(r.responses, &copied)
	return response.ID, nil
}

func (r *stubResponseRepo) GetBySurveyID(_ context.Context, surveyID string) ([]*model.Response, error) {
	out := []*model.Response{}
	for _, response := range r.responses {
		if response.SurveyID == surveyID {
			out = append(out, response)
		}
	}
	return out, nil
}

func (r *stubResponseRepo) DeleteBySurveyID(_ context.Context, surveyID string) error {
	kept := r.responses[:0]
	for _, response := range r.responses {
		if response.SurveyID != surveyID {
			kept = append(kept, response)
		}
	}
	r.responses = kept
	return nil
}

type stubEmployeeRepo struct {
	employees []*model.Employee
	nextID    int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{}
}

func (r *stubEmployeeRepo) Create(_ context.Context, employee *model.Employee) (string, error) {
	r.nextID++
	employee.ID = fmt.Sprintf("emp%021d", r.nextID)
	employee.CreatedAt = time.Now()
	copied := *employee
	r.employees = append(r.employees, &copied)
	return employee.ID, nil
}

func (r *stubEmployeeRepo) GetByCompanyID(_ context.Context, companyID string) ([]*model.Employee, error) {
	out := []*model.Employee{}
	for _, employee := range r.employees {
		if employee.CompanyID == companyID {
			out = append(out, employee)
		}
	}
	return out, nil
}

type stubSentimentCache struct {
	entries       map[string]*float64
	sets          int
	invalidations int
}

func newStubSentimentCache() *stubSentimentCache {
	return &stubSentimentCache{entries: map[string]*float64{}}
}

func (c *stubSentimentCache) Get(_ context.Context, companyID string) (*float64, bool, error) {
	score, ok := c.entries[companyID]
	return score, ok, nil
}

func (c *stubSentimentCache) Set(_ context.Context, companyID string, score *float64) error {
	c.entries[companyID] = score
	c.sets++
	return nil
}

func (c *stubSentimentCache) Invalidate(_ context.Context, companyID string) error {
	delete(c.entries, companyID)
	c.invalidations++
	return nil
}
