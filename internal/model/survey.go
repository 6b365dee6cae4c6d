package model

import "time"

// SurveyStatus is the lifecycle state of a survey
type SurveyStatus string

const (
	SurveyStatusDraft  SurveyStatus = "DRAFT"  // Created, questions editable, not yet distributed
	SurveyStatusActive SurveyStatus = "ACTIVE" // Launched, tokens issued, accepting responses
	SurveyStatusClosed SurveyStatus = "CLOSED" // Terminal, still eligible for aggregation
)

// Survey is a questionnaire owned by a company and distributed to its roster
type Survey struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	CompanyID   string       `json:"companyId" bson:"companyId"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Status      SurveyStatus `json:"status" bson:"status"`
	Deadline    *time.Time   `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Questions   []Question   `json:"questions" bson:"questions"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
}
