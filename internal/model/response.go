package model

import "time"

// Response is one anonymous completed submission for a survey. It carries no
// reference to the employee or the token that produced it; anonymity is a
// storage-level invariant, not a redaction step.
type Response struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SurveyID    string    `json:"surveyId" bson:"surveyId"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
	Answers     []Answer  `json:"answers" bson:"answers"`
}

// Answer references a question by id. Exactly one of TextValue/IntValue is
// populated, chosen by the parent question's type.
type Answer struct {
	QuestionID string  `json:"questionId" bson:"questionId"`
	TextValue  *string `json:"textValue,omitempty" bson:"textValue,omitempty"`
	IntValue   *int    `json:"intValue,omitempty" bson:"intValue,omitempty"`
}
