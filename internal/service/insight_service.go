package service

import (
	"context"
	"fmt"
	"strings"

	"engagepulse/internal/model"
)

const sentimentNeutral = "Neutral"

// Analyzer turns a survey's aggregated results into a qualitative summary.
// Implementations never fail: provider or parse errors degrade into a
// Neutral summary carrying the error detail, so callers can always render
// something.
type Analyzer interface {
	Analyze(ctx context.Context, result *model.SurveyResult) *model.TextSummary
}

// themeCategory maps keywords to a theme. Declaration order breaks ties when
// two themes collect the same number of hits.
type themeCategory struct {
	name     string
	keywords []string
	advice   string
}

var themeCategories = []themeCategory{
	{"Compensation", []string{"pay", "salary", "raise", "bonus", "compensation", "underpaid"},
		"Review pay bands against market benchmarks and communicate the outcome."},
	{"Burnout", []string{"tired", "burnout", "overworked", "exhausted", "stress", "workload"},
		"Audit workloads per team and make recovery time an explicit norm."},
	{"Management", []string{"manager", "management", "leadership", "boss", "micromanage"},
		"Invest in manager coaching and regular skip-level conversations."},
	{"Communication", []string{"communication", "informed", "transparency", "updates", "silos"},
		"Establish a predictable company-wide update rhythm."},
	{"Growth", []string{"training", "career", "learning", "promotion", "growth", "mentorship"},
		"Publish clear growth paths and protect a learning budget."},
	{"Team Culture", []string{"team", "culture", "colleagues", "atmosphere", "collaboration"},
		"Ask teams what they value most today and protect it deliberately."},
	{"Work-Life Balance", []string{"balance", "hours", "overtime", "flexible", "remote"},
		"Revisit meeting load and after-hours expectations."},
}

var positiveWords = []string{
	"love", "great", "good", "enjoy", "happy", "satisfied",
	"excellent", "supportive", "appreciate", "helpful", "awesome",
}

var negativeWords = []string{
	"low", "bad", "poor", "hate", "frustrated", "tired",
	"burnout", "stress", "toxic", "unfair", "overworked", "worse",
}

// KeywordAnalyzer is the deterministic text-insight strategy: fixed keyword
// tables, no network, identical output for identical input.
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer creates a new keyword analyzer
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze classifies the survey's free-text answers by keyword hits.
func (a *KeywordAnalyzer) Analyze(_ context.Context, result *model.SurveyResult) *model.TextSummary {
	texts := collectOpenText(result)
	if len(texts) == 0 {
		return emptyDataSummary()
	}

	themeHits := make([]int, len(themeCategories))
	positive, negative := 0, 0

	for _, text := range texts {
		for _, word := range tokenize(text) {
			for i, category := range themeCategories {
				if containsWord(category.keywords, word) {
					themeHits[i]++
				}
			}
			if containsWord(positiveWords, word) {
				positive++
			}
			if containsWord(negativeWords, word) {
				negative++
			}
		}
	}

	top := rankThemes(themeHits)
	sentiment := sentimentNeutral
	switch {
	case positive > negative:
		sentiment = "Positive"
	case negative > positive:
		sentiment = "Negative"
	}

	summary := &model.TextSummary{
		SentimentLabel:       sentiment,
		TopThemes:            []string{},
		ActionableSuggestion: "Keep collecting feedback to sharpen the picture.",
	}
	switch len(top) {
	case 0:
		summary.Summary = fmt.Sprintf("No dominant themes emerged from the feedback; overall sentiment reads %s.", strings.ToLower(sentiment))
	case 1:
		summary.Summary = fmt.Sprintf("Feedback centers on %s; overall sentiment reads %s.", top[0].name, strings.ToLower(sentiment))
	default:
		summary.Summary = fmt.Sprintf("Feedback centers on %s and %s; overall sentiment reads %s.", top[0].name, top[1].name, strings.ToLower(sentiment))
	}
	for _, category := range top {
		summary.TopThemes = append(summary.TopThemes, category.name)
	}
	if len(top) > 0 {
		summary.ActionableSuggestion = top[0].advice
	}
	return summary
}

// rankThemes returns up to three categories with at least one hit, ordered by
// hit count, ties resolved by declaration order.
func rankThemes(hits []int) []themeCategory {
	type ranked struct {
		category themeCategory
		hits     int
	}
	out := []ranked{}
	for i, category := range themeCategories {
		if hits[i] > 0 {
			out = append(out, ranked{category, hits[i]})
		}
	}
	// Insertion sort keeps declaration order stable for equal counts
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].hits > out[j-1].hits; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	categories := make([]themeCategory, 0, len(out))
	for _, r := range out {
		categories = append(categories, r.category)
	}
	return categories
}

func collectOpenText(result *model.SurveyResult) []string {
	if result == nil {
		return nil
	}
	texts := []string{}
	for _, question := range result.Questions {
		if question.Type == model.QuestionTypeOpenText {
			texts = append(texts, question.TextAnswers...)
		}
	}
	return texts
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

func containsWord(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}

func emptyDataSummary() *model.TextSummary {
	return &model.TextSummary{
		Summary:              "No survey data available for analysis.",
		TopThemes:            []string{},
		SentimentLabel:       sentimentNeutral,
		ActionableSuggestion: "Collect more feedback to generate insights.",
	}
}
