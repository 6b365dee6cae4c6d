package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeRatingScale    QuestionType = "RATING_SCALE"    // Integer 1-5
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE" // Text value from Options
	QuestionTypeOpenText       QuestionType = "OPEN_TEXT"       // Free text
)

// Question belongs to exactly one survey. OrderIndex defines presentation
// order, which is not necessarily insertion order.
type Question struct {
	ID         string       `json:"id" bson:"id"`
	Text       string       `json:"text" bson:"text"`
	Type       QuestionType `json:"type" bson:"type"`
	Options    []string     `json:"options,omitempty" bson:"options,omitempty"` // MULTIPLE_CHOICE only
	OrderIndex int          `json:"orderIndex" bson:"orderIndex"`
	Required   bool         `json:"required" bson:"required"`
}
