package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"engagepulse/internal/model"
	"engagepulse/internal/service"

	"github.com/gorilla/mux"
)

// PublicHandler serves the anonymous survey-taking flow. These endpoints
// authenticate with the single-use access token alone; no company identity
// is ever attached to the request.
type PublicHandler struct {
	tokenSvc    *service.TokenService
	surveySvc   *service.SurveyService
	responseSvc *service.ResponseService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(tokenSvc *service.TokenService, surveySvc *service.SurveyService, responseSvc *service.ResponseService) *PublicHandler {
	return &PublicHandler{
		tokenSvc:    tokenSvc,
		surveySvc:   surveySvc,
		responseSvc: responseSvc,
	}
}

// PublicSurveyResponse is the survey as shown to an anonymous respondent
type PublicSurveyResponse struct {
	SurveyID    string             `json:"surveyId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      model.SurveyStatus `json:"status"`
	Deadline    *time.Time         `json:"deadline,omitempty"`
	Questions   []model.Question   `json:"questions"`
}

// SubmitRequest is the request body for an anonymous submission
type SubmitRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"dive"`
}

// AnswerRequest is one answer inside a submission
type AnswerRequest struct {
	QuestionID string  `json:"questionId" validate:"required"`
	TextValue  *string `json:"textValue"`
	IntValue   *int    `json:"intValue"`
}

// GetSurvey handles GET /v1/public/surveys/{token}. Resolving does not
// consume the token; a respondent can reload the form until they submit.
func (h *PublicHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID, err := h.tokenSvc.Resolve(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	survey, err := h.surveySvc.Get(r.Context(), surveyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PublicSurveyResponse{
		SurveyID:    survey.ID,
		Title:       survey.Title,
		Description: survey.Description,
		Status:      survey.Status,
		Deadline:    survey.Deadline,
		Questions:   survey.Questions,
	})
}

// Submit handles POST /v1/public/surveys/{token}/submit
func (h *PublicHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	answers := make([]model.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, model.Answer{
			QuestionID: a.QuestionID,
			TextValue:  a.TextValue,
			IntValue:   a.IntValue,
		})
	}

	if err := h.responseSvc.Submit(r.Context(), mux.Vars(r)["token"], answers); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted"})
}
