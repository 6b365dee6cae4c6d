package rest

import (
	"net/http"
	"os"

	"engagepulse/internal/service"
	"engagepulse/internal/transport/rest/handler"
	"engagepulse/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService   *service.SurveyService
	TokenService    *service.TokenService
	ResponseService *service.ResponseService
	ResultsService  *service.ResultsService
	Analyzer        service.Analyzer
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	surveyHandler := handler.NewSurveyHandler(c.SurveyService, c.ResponseService)
	resultsHandler := handler.NewResultsHandler(c.SurveyService, c.ResultsService, c.Analyzer)
	publicHandler := handler.NewPublicHandler(c.TokenService, c.SurveyService, c.ResponseService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes (token is the only credential)
	v1.HandleFunc("/public/surveys/{token}", publicHandler.GetSurvey).Methods("GET", "OPTIONS")
	v1.HandleFunc("/public/surveys/{token}/submit", publicHandler.Submit).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Company routes (require company auth)
	companyRoutes := v1.NewRoute().Subrouter()
	companyRoutes.Use(middleware.RequireCompany)

	companyRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	companyRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	companyRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	companyRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	companyRoutes.HandleFunc("/surveys/{surveyId}/launch", surveyHandler.Launch).Methods("POST", "OPTIONS")
	companyRoutes.HandleFunc("/surveys/{surveyId}/close", surveyHandler.Close).Methods("POST", "OPTIONS")
	companyRoutes.HandleFunc("/surveys/{surveyId}/simulate", surveyHandler.Simulate).Methods("POST", "OPTIONS")

	companyRoutes.HandleFunc("/surveys/{surveyId}/results", resultsHandler.Results).Methods("GET", "OPTIONS")
	companyRoutes.HandleFunc("/surveys/{surveyId}/analyze", resultsHandler.Analyze).Methods("POST", "OPTIONS")
	companyRoutes.HandleFunc("/sentiment", resultsHandler.Sentiment).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
