package model

// QuestionResult is the per-question aggregate, keyed on question type:
// RATING_SCALE fills AverageRating and a "1".."5" distribution,
// MULTIPLE_CHOICE fills the distribution over option values,
// OPEN_TEXT fills the literal list of non-empty text answers.
type QuestionResult struct {
	QuestionID         string         `json:"questionId"`
	Text               string         `json:"text"`
	Type               QuestionType   `json:"type"`
	AverageRating      float64        `json:"averageRating,omitempty"`
	AnswerDistribution map[string]int `json:"answerDistribution,omitempty"`
	TextAnswers        []string       `json:"textAnswers,omitempty"`
}

// SurveyResult is the full aggregate for one survey. TotalResponses counts
// response rows, not answers; a partially-answered response counts once.
type SurveyResult struct {
	SurveyID       string           `json:"surveyId"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	TotalResponses int              `json:"totalResponses"`
	Questions      []QuestionResult `json:"questions"`
}

// TextSummary is the qualitative summary produced by a text-insight analyzer.
type TextSummary struct {
	Summary              string   `json:"summary"`
	ProblemExplanation   string   `json:"problemExplanation,omitempty"`
	TopThemes            []string `json:"topThemes"`
	SentimentLabel       string   `json:"sentimentLabel"`
	ActionableSuggestion string   `json:"actionableSuggestion"`
}
