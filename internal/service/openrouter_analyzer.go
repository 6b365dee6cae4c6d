package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"engagepulse/internal/config"
	"engagepulse/internal/model"
)

// promptBudget bounds the survey data embedded in the provider prompt.
const promptBudget = 6000

// OpenRouterAnalyzer is the delegated text-insight strategy: it asks an
// external chat-completion provider for a JSON summary of the survey
// results. Every failure mode degrades to a Neutral summary; the analyzer
// never surfaces an error to its caller.
type OpenRouterAnalyzer struct {
	config *config.AIConfig
	client *http.Client
}

// NewOpenRouterAnalyzer creates a new OpenRouter-backed analyzer
func NewOpenRouterAnalyzer(cfg *config.AIConfig) *OpenRouterAnalyzer {
	return &OpenRouterAnalyzer{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Analyze sends the aggregated results to the provider and parses its JSON
// verdict into a TextSummary.
func (a *OpenRouterAnalyzer) Analyze(ctx context.Context, result *model.SurveyResult) *model.TextSummary {
	if result == nil || len(result.Questions) == 0 {
		return emptyDataSummary()
	}
	if !a.config.IsEnabled() {
		return degradedSummary(
			"AI analysis unavailable: OpenRouter API key is not configured.",
			"Set OPENROUTER_API_KEY to enable delegated analysis.",
		)
	}

	content, err := a.call(ctx, buildAnalysisPrompt(result))
	if err != nil {
		log.Printf("OpenRouter analysis failed: %v", err)
		return degradedSummary("AI analysis failed. Error: "+err.Error(), "Check logs for the provider response.")
	}

	summary, err := parseAnalysisContent(content)
	if err != nil {
		log.Printf("OpenRouter response parse failed: %v", err)
		return degradedSummary("AI analysis returned an unreadable result. Error: "+err.Error(), "Check logs for the raw provider output.")
	}
	return summary
}

// buildAnalysisPrompt renders the per-question results into the provider
// prompt, truncated to the character budget before the instructions.
func buildAnalysisPrompt(result *model.SurveyResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Survey Title: %s\n", result.Title)
	fmt.Fprintf(&sb, "Total Responses: %d\n\n", result.TotalResponses)

	for _, q := range result.Questions {
		fmt.Fprintf(&sb, "Question: %s\n", q.Text)
		fmt.Fprintf(&sb, "Type: %s\n", q.Type)

		switch q.Type {
		case model.QuestionTypeRatingScale:
			fmt.Fprintf(&sb, "Average Rating: %.2f\n", q.AverageRating)
		case model.QuestionTypeMultipleChoice:
			fmt.Fprintf(&sb, "Distribution: %v\n", q.AnswerDistribution)
		case model.QuestionTypeOpenText:
			if len(q.TextAnswers) > 0 {
				samples := q.TextAnswers
				if len(samples) > 20 {
					samples = samples[:20]
				}
				fmt.Fprintf(&sb, "Sample Responses: %s\n", strings.Join(samples, "; "))
			} else {
				sb.WriteString("No text responses.\n")
			}
		}
		sb.WriteString("\n")
	}

	prompt := sb.String()
	if len(prompt) > promptBudget {
		prompt = prompt[:promptBudget] + "\n...(truncated)"
	}

	return prompt + "\n\nPlease analyze this survey data and return a raw JSON object (no markdown) with the following fields:\n" +
		"- 'shortDescription': A concise summary of the overall sentiment and key findings.\n" +
		"- 'problemExplanation': An explanation of the main issues or problems identified.\n" +
		"- 'solutions': A list of strings, each being a concrete suggestion or solution.\n" +
		"- 'sentiment': 'Positive', 'Neutral', or 'Negative'.\n" +
		"- 'topThemes': A list of 3 main topics (strings).\n"
}

// call makes a chat-completions request and returns the message content
func (a *OpenRouterAnalyzer) call(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": a.config.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"stream": false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.config.CompletionsEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(a.config.APIKey))
	req.Header.Set("X-Title", "EngagePulse")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from provider")
	}
	return completion.Choices[0].Message.Content, nil
}

func parseAnalysisContent(content string) (*model.TextSummary, error) {
	// Some models wrap the JSON in markdown fences despite instructions
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	var parsed struct {
		ShortDescription   string   `json:"shortDescription"`
		ProblemExplanation string   `json:"problemExplanation"`
		Solutions          []string `json:"solutions"`
		Sentiment          string   `json:"sentiment"`
		TopThemes          []string `json:"topThemes"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, err
	}

	suggestion := ""
	if len(parsed.Solutions) > 0 {
		suggestion = "- " + strings.Join(parsed.Solutions, "\n- ")
	}
	sentiment := parsed.Sentiment
	if sentiment == "" {
		sentiment = sentimentNeutral
	}
	themes := parsed.TopThemes
	if themes == nil {
		themes = []string{}
	}

	return &model.TextSummary{
		Summary:              parsed.ShortDescription,
		ProblemExplanation:   parsed.ProblemExplanation,
		TopThemes:            themes,
		SentimentLabel:       sentiment,
		ActionableSuggestion: suggestion,
	}, nil
}

func degradedSummary(detail, suggestion string) *model.TextSummary {
	return &model.TextSummary{
		Summary:              detail,
		TopThemes:            []string{},
		SentimentLabel:       sentimentNeutral,
		ActionableSuggestion: suggestion,
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
