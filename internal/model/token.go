package model

import "time"

// AccessToken is a single-use anonymous credential binding one employee to
// one survey. The employee reference exists only to prevent duplicate
// issuance and must never be exposed through any response-reading path.
type AccessToken struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Token      string    `json:"token" bson:"token"`
	SurveyID   string    `json:"surveyId" bson:"surveyId"`
	EmployeeID string    `json:"-" bson:"employeeId"`
	Used       bool      `json:"used" bson:"used"`
	ExpiresAt  time.Time `json:"expiresAt" bson:"expiresAt"`
}
