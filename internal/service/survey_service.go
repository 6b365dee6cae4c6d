package service

import (
	"context"
	"sort"

	"engagepulse/internal/model"
	"engagepulse/internal/repository"
)

// SurveyService owns the survey lifecycle: DRAFT -> ACTIVE -> CLOSED, with
// question composition fixed at creation time.
type SurveyService struct {
	surveyRepo   repository.SurveyRepo
	employeeRepo repository.EmployeeRepo
	responseRepo repository.ResponseRepo
	tokenSvc     *TokenService
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo, employeeRepo repository.EmployeeRepo, responseRepo repository.ResponseRepo, tokenSvc *TokenService) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		employeeRepo: employeeRepo,
		responseRepo: responseRepo,
		tokenSvc:     tokenSvc,
	}
}

// Create persists a survey with its questions in one write. Status is forced
// to DRAFT regardless of caller input.
func (s *SurveyService) Create(ctx context.Context, companyID string, survey *model.Survey) (*model.Survey, error) {
	survey.CompanyID = companyID
	survey.Status = model.SurveyStatusDraft
	if survey.Questions == nil {
		survey.Questions = []model.Question{}
	}

	if _, err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, storageErr(err)
	}

	sort.SliceStable(survey.Questions, func(i, j int) bool {
		return survey.Questions[i].OrderIndex < survey.Questions[j].OrderIndex
	})
	return survey, nil
}

// Get retrieves a survey by id
func (s *SurveyService) Get(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	return survey, nil
}

// ListByCompany retrieves all surveys owned by a company
func (s *SurveyService) ListByCompany(ctx context.Context, companyID string) ([]*model.Survey, error) {
	surveys, err := s.surveyRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, storageErr(err)
	}
	return surveys, nil
}

// Launch transitions DRAFT -> ACTIVE and issues tokens for the company's
// current roster. Launching an already-ACTIVE survey just re-runs issuance,
// which is idempotent, so a growing roster can be re-launched safely.
// Launching with zero questions or an empty roster is allowed.
func (s *SurveyService) Launch(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey.Status == model.SurveyStatusClosed {
		return nil, ErrInvalidTransition
	}

	employees, err := s.employeeRepo.GetByCompanyID(ctx, survey.CompanyID)
	if err != nil {
		return nil, storageErr(err)
	}
	if _, err := s.tokenSvc.IssueForRoster(ctx, id, employees); err != nil {
		return nil, err
	}

	if survey.Status == model.SurveyStatusDraft {
		if err := s.surveyRepo.UpdateStatus(ctx, id, model.SurveyStatusActive); err != nil {
			return nil, storageErr(err)
		}
		survey.Status = model.SurveyStatusActive
	}
	return survey, nil
}

// Close transitions ACTIVE -> CLOSED. Closing an already-CLOSED survey is a
// no-op; a DRAFT was never launched and cannot be closed.
func (s *SurveyService) Close(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch survey.Status {
	case model.SurveyStatusClosed:
		return survey, nil
	case model.SurveyStatusDraft:
		return nil, ErrInvalidTransition
	}

	if err := s.surveyRepo.UpdateStatus(ctx, id, model.SurveyStatusClosed); err != nil {
		return nil, storageErr(err)
	}
	survey.Status = model.SurveyStatusClosed
	return survey, nil
}

// Delete removes a survey together with its responses and tokens
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.responseRepo.DeleteBySurveyID(ctx, id); err != nil {
		return storageErr(err)
	}
	if err := s.tokenSvc.DeleteForSurvey(ctx, id); err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return storageErr(err)
	}
	return nil
}
