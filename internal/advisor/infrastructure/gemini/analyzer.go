// Package gemini generates impact analyses with the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"github.com/felixgeelhaar/codestrike/internal/advisor/domain"
)

// Analyzer implements domain.Analyzer on top of the Gemini API. The model
// is constrained to the response schema so output parses directly into an
// ImpactAnalysis.
type Analyzer struct {
	client  *genai.Client
	model   string
	breaker *gobreaker.CircuitBreaker[domain.ImpactAnalysis]
	logger  *slog.Logger
}

// NewAnalyzer creates a Gemini-backed analyzer.
func NewAnalyzer(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Analyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	settings := gobreaker.Settings{
		Name: "gemini-analyzer",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Analyzer{
		client:  client,
		model:   model,
		breaker: gobreaker.NewCircuitBreaker[domain.ImpactAnalysis](settings),
		logger:  logger,
	}, nil
}

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"riskLevel": {
			Type: genai.TypeString,
			Enum: []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"},
		},
		"impactDescription":   {Type: genai.TypeString},
		"adjustedPlan":        {Type: genai.TypeString},
		"motivationalMessage": {Type: genai.TypeString},
	},
	Required: []string{"riskLevel", "impactDescription", "adjustedPlan", "motivationalMessage"},
}

// AnalyzeMiss asks the model to assess a missed day. Errors bubble up so
// the caller can substitute the fallback analysis.
func (a *Analyzer) AnalyzeMiss(ctx context.Context, miss domain.MissContext) (domain.ImpactAnalysis, error) {
	return a.breaker.Execute(func() (domain.ImpactAnalysis, error) {
		return a.analyze(ctx, miss)
	})
}

func (a *Analyzer) analyze(ctx context.Context, miss domain.MissContext) (domain.ImpactAnalysis, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(buildPrompt(miss)), config)
	if err != nil {
		return domain.ImpactAnalysis{}, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return domain.ImpactAnalysis{}, fmt.Errorf("empty model response")
	}

	var analysis domain.ImpactAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return domain.ImpactAnalysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if !analysis.RiskLevel.IsValid() {
		return domain.ImpactAnalysis{}, fmt.Errorf("invalid risk level %q", analysis.RiskLevel)
	}
	return analysis, nil
}

func buildPrompt(miss domain.MissContext) string {
	var b strings.Builder
	b.WriteString("You are a strict but supportive coding-interview coach. ")
	b.WriteString("The user missed today's practice target.\n\n")
	fmt.Fprintf(&b, "Daily target: %d problems\n", miss.DailyTarget)
	fmt.Fprintf(&b, "Solved today: %d problems\n", miss.SolvedToday)
	fmt.Fprintf(&b, "Deficit: %d problems\n", miss.Deficit)
	fmt.Fprintf(&b, "Current streak: %d days\n", miss.Streak)
	fmt.Fprintf(&b, "Stated reason: %s\n", miss.Reason)

	writeGoal := func(label string, g *domain.GoalSnapshot) {
		if g == nil {
			return
		}
		fmt.Fprintf(&b, "%s goal: %q at %d/%d", label, g.Description, g.Progress, g.Target)
		if g.Deadline != "" {
			fmt.Fprintf(&b, " (deadline %s)", g.Deadline)
		}
		b.WriteString("\n")
	}
	writeGoal("Short-term", miss.ShortTerm)
	writeGoal("Long-term", miss.LongTerm)

	b.WriteString("\nAssess how this miss affects the goals. Keep impactDescription to two sentences, ")
	b.WriteString("adjustedPlan to one concrete catch-up action, and motivationalMessage to one short line.")
	return b.String()
}
