package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"engagepulse/internal/model"
	"engagepulse/internal/service"
	"engagepulse/internal/transport/rest/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New()

// SurveyHandler handles survey lifecycle endpoints
type SurveyHandler struct {
	surveySvc   *service.SurveyService
	responseSvc *service.ResponseService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService, responseSvc *service.ResponseService) *SurveyHandler {
	return &SurveyHandler{
		surveySvc:   surveySvc,
		responseSvc: responseSvc,
	}
}

// CreateSurveyRequest is the request body for creating a survey
type CreateSurveyRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Deadline    *time.Time        `json:"deadline"`
	Questions   []QuestionRequest `json:"questions" validate:"dive"`
}

// QuestionRequest is one question inside a survey creation request
type QuestionRequest struct {
	Text       string   `json:"text" validate:"required"`
	Type       string   `json:"type" validate:"required,oneof=RATING_SCALE MULTIPLE_CHOICE OPEN_TEXT"`
	Options    []string `json:"options"`
	OrderIndex int      `json:"orderIndex"`
	Required   bool     `json:"required"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, model.Question{
			Text:       q.Text,
			Type:       model.QuestionType(q.Type),
			Options:    q.Options,
			OrderIndex: q.OrderIndex,
			Required:   q.Required,
		})
	}

	survey := &model.Survey{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Questions:   questions,
	}

	created, err := h.surveySvc.Create(r.Context(), companyID, survey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	surveys, err := h.surveySvc.ListByCompany(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	survey, ok := h.owned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Launch handles POST /v1/surveys/{surveyId}/launch
func (h *SurveyHandler) Launch(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.owned(w, r); !ok {
		return
	}

	survey, err := h.surveySvc.Launch(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Close handles POST /v1/surveys/{surveyId}/close
func (h *SurveyHandler) Close(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.owned(w, r); !ok {
		return
	}

	survey, err := h.surveySvc.Close(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.owned(w, r); !ok {
		return
	}

	if err := h.surveySvc.Delete(r.Context(), mux.Vars(r)["surveyId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Simulate handles POST /v1/surveys/{surveyId}/simulate
func (h *SurveyHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.owned(w, r); !ok {
		return
	}

	count, err := h.responseSvc.Simulate(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"simulated": count})
}

// owned loads the survey from the path and verifies the caller's company owns
// it. Foreign surveys read as not found so ids do not leak across tenants.
func (h *SurveyHandler) owned(w http.ResponseWriter, r *http.Request) (*model.Survey, bool) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	survey, err := h.surveySvc.Get(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	if survey.CompanyID != companyID {
		writeError(w, http.StatusNotFound, "survey not found")
		return nil, false
	}
	return survey, true
}
