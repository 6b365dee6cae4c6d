package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagepulse/internal/model"
)

func openTextResult(answers ...string) *model.SurveyResult {
	return &model.SurveyResult{
		SurveyID:       "s1",
		Title:          "Pulse",
		TotalResponses: len(answers),
		Questions: []model.QuestionResult{
			{
				QuestionID:  "q1",
				Text:        "Anything else?",
				Type:        model.QuestionTypeOpenText,
				TextAnswers: answers,
			},
		},
	}
}

func TestKeywordAnalyzerFlagsCompensation(t *testing.T) {
	analyzer := NewKeywordAnalyzer()

	summary := analyzer.Analyze(context.Background(), openTextResult(
		"I love the team",
		"Pay is too low",
		"Pay is too low",
	))

	assert.Equal(t, "Negative", summary.SentimentLabel)
	require.NotEmpty(t, summary.TopThemes)
	assert.Equal(t, "Compensation", summary.TopThemes[0])
	assert.NotEmpty(t, summary.ActionableSuggestion)
}

func TestKeywordAnalyzerIsDeterministic(t *testing.T) {
	analyzer := NewKeywordAnalyzer()
	input := openTextResult(
		"Management never shares updates",
		"My manager is supportive",
		"Too much overtime lately",
	)

	first := analyzer.Analyze(context.Background(), input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, analyzer.Analyze(context.Background(), input))
	}
}

func TestKeywordAnalyzerPositiveFeedback(t *testing.T) {
	analyzer := NewKeywordAnalyzer()

	summary := analyzer.Analyze(context.Background(), openTextResult(
		"Great team, I enjoy the culture",
		"Happy with the collaboration here",
	))

	assert.Equal(t, "Positive", summary.SentimentLabel)
	assert.Contains(t, summary.TopThemes, "Team Culture")
}

func TestKeywordAnalyzerCapsThemesAtThree(t *testing.T) {
	analyzer := NewKeywordAnalyzer()

	summary := analyzer.Analyze(context.Background(), openTextResult(
		"pay salary bonus",
		"burnout stress workload",
		"manager leadership",
		"communication updates",
		"training career growth",
	))

	assert.Len(t, summary.TopThemes, 3)
}

func TestKeywordAnalyzerEmptyInput(t *testing.T) {
	analyzer := NewKeywordAnalyzer()

	for _, result := range []*model.SurveyResult{
		nil,
		{},
		openTextResult(),
	} {
		summary := analyzer.Analyze(context.Background(), result)
		assert.Equal(t, "Neutral", summary.SentimentLabel)
		assert.Empty(t, summary.TopThemes)
		assert.Equal(t, "No survey data available for analysis.", summary.Summary)
	}
}
