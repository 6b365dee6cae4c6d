package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"engagepulse/internal/config"
	"engagepulse/internal/model"
	"engagepulse/internal/repository"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds a demo company with an employee roster and a ready-to-launch survey.
// Authenticate against the API with "Bearer mock-jwt-token-demo-co".
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	employeeRepo := repository.NewEmployeeRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)

	companyID := "demo-co"

	roster := []struct {
		email      string
		name       string
		department string
	}{
		{"ana.marques@demo.example", "Ana Marques", "Engineering"},
		{"ben.okafor@demo.example", "Ben Okafor", "Engineering"},
		{"carla.reyes@demo.example", "Carla Reyes", "Product"},
		{"dmitri.ivanov@demo.example", "Dmitri Ivanov", "Sales"},
		{"emma.larsen@demo.example", "Emma Larsen", "Support"},
		{"farid.hassan@demo.example", "Farid Hassan", "Support"},
	}
	for _, person := range roster {
		employee := &model.Employee{
			CompanyID:  companyID,
			Email:      person.email,
			FullName:   person.name,
			Department: person.department,
		}
		if _, err := employeeRepo.Create(ctx, employee); err != nil {
			log.Fatalf("Failed to insert employee %s: %v", person.email, err)
		}
	}

	deadline := time.Now().AddDate(0, 0, 21)
	survey := &model.Survey{
		CompanyID:   companyID,
		Title:       "Quarterly Pulse Check",
		Description: "How are things going this quarter? Your answers are anonymous.",
		Status:      model.SurveyStatusDraft,
		Deadline:    &deadline,
		Questions: []model.Question{
			{
				Text:       "How satisfied are you with your work overall?",
				Type:       model.QuestionTypeRatingScale,
				OrderIndex: 0,
				Required:   true,
			},
			{
				Text:       "How would you rate collaboration within your team?",
				Type:       model.QuestionTypeRatingScale,
				OrderIndex: 1,
				Required:   true,
			},
			{
				Text:       "Which area should we invest in next quarter?",
				Type:       model.QuestionTypeMultipleChoice,
				Options:    []string{"Tooling", "Training", "Hiring", "Office environment"},
				OrderIndex: 2,
			},
			{
				Text:       "What is the one thing we should change?",
				Type:       model.QuestionTypeOpenText,
				OrderIndex: 3,
			},
		},
	}
	if _, err := surveyRepo.Create(ctx, survey); err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}

	fmt.Printf("Seeded company '%s' with %d employees and survey '%s' (%s)\n",
		companyID, len(roster), survey.Title, survey.ID)
}
