package handler

import (
	"net/http"

	"engagepulse/internal/model"
	"engagepulse/internal/service"
	"engagepulse/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ResultsHandler serves aggregated results, the company sentiment score and
// the text-insight analysis
type ResultsHandler struct {
	surveySvc  *service.SurveyService
	resultsSvc *service.ResultsService
	analyzer   service.Analyzer
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(surveySvc *service.SurveyService, resultsSvc *service.ResultsService, analyzer service.Analyzer) *ResultsHandler {
	return &ResultsHandler{
		surveySvc:  surveySvc,
		resultsSvc: resultsSvc,
		analyzer:   analyzer,
	}
}

// Results handles GET /v1/surveys/{surveyId}/results
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ownedResults(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Analyze handles POST /v1/surveys/{surveyId}/analyze
func (h *ResultsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ownedResults(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.analyzer.Analyze(r.Context(), result))
}

// Sentiment handles GET /v1/sentiment. The score is null until the company
// has a measurable survey with rating answers.
func (h *ResultsHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	score, err := h.resultsSvc.CompanySentimentScore(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*float64{"sentimentScore": score})
}

func (h *ResultsHandler) ownedResults(w http.ResponseWriter, r *http.Request) (*model.SurveyResult, bool) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	surveyID := mux.Vars(r)["surveyId"]
	survey, err := h.surveySvc.Get(r.Context(), surveyID)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	if survey.CompanyID != companyID {
		writeError(w, http.StatusNotFound, "survey not found")
		return nil, false
	}

	result, err := h.resultsSvc.ResultsFor(r.Context(), surveyID)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return result, true
}
