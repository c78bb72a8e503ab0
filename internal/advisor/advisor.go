// Package advisor produces short business insights from a snapshot using a
// generative model. Failures never reach the caller: they degrade to
// FallbackText.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"mughal/internal/logger"
	"mughal/internal/models"
	"mughal/internal/reports"
)

// FallbackText is returned whenever insights cannot be produced.
const FallbackText = "Unable to load AI insights at this time."

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// recentTransactions is how many of the newest transactions go into the prompt.
const recentTransactions = 5

// Advisor returns human-readable insights for a snapshot.
type Advisor interface {
	Insights(ctx context.Context, snap models.Snapshot) string
}

// Generator sends a single prompt to a model and returns its text answer.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Static always answers with FallbackText. It stands in when no model is configured.
type Static struct{}

// Insights implements Advisor.
func (Static) Insights(context.Context, models.Snapshot) string { return FallbackText }

// GeminiAdvisor asks a Gemini model for insights.
type GeminiAdvisor struct {
	gen     Generator
	model   string
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewGeminiAdvisor creates an advisor over gen. An empty model selects
// DefaultModel; a non-positive timeout disables the deadline.
func NewGeminiAdvisor(gen Generator, model string, timeout time.Duration) *GeminiAdvisor {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAdvisor{
		gen:     gen,
		model:   model,
		timeout: timeout,
		log:     logger.Named("advisor"),
	}
}

// Insights implements Advisor. It makes one attempt and does not retry.
func (a *GeminiAdvisor) Insights(ctx context.Context, snap models.Snapshot) string {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.gen.Generate(ctx, a.model, BuildPrompt(snap))
	if err != nil {
		a.log.Warnw("insight generation failed", "model", a.model, "error", err)
		return FallbackText
	}
	text = strings.TrimSpace(text)
	if text == "" {
		a.log.Warnw("insight generation returned no text", "model", a.model)
		return FallbackText
	}
	return text
}

// BuildPrompt renders the consultant prompt: a stock summary of every
// product, the most recent transactions and the headline totals.
func BuildPrompt(snap models.Snapshot) string {
	var b strings.Builder

	b.WriteString("You are an expert retail and wholesale business consultant. ")
	b.WriteString("Analyze the following store data and give practical advice.\n\n")

	b.WriteString("Products:\n")
	for _, p := range snap.Products {
		fmt.Fprintf(&b, "- %s (Stock: %d)\n", p.Name, p.Stock)
	}

	b.WriteString("\nRecent transactions:\n")
	recent := snap.Transactions
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}
	if len(recent) == 0 {
		b.WriteString("- none\n")
	}
	for _, tx := range recent {
		fmt.Fprintf(&b, "- %s: %s %s\n", tx.Type, reports.Currency, tx.Total.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotals: sales revenue %s %s, expenses %s %s, receivables %s %s, payables %s %s.\n",
		reports.Currency, reports.SalesRevenue(snap).StringFixed(2),
		reports.Currency, reports.TotalExpenses(snap).StringFixed(2),
		reports.Currency, reports.Receivables(snap).StringFixed(2),
		reports.Currency, reports.Payables(snap).StringFixed(2),
	)

	b.WriteString("\nProvide exactly 3 short insights:\n")
	b.WriteString("1. A sales tip.\n")
	b.WriteString("2. A stock alert.\n")
	b.WriteString("3. A financial health observation.\n")
	return b.String()
}

// GenAIGenerator is a Generator backed by the google.golang.org/genai client.
type GenAIGenerator struct {
	client *genai.Client
}

// NewGenAIGenerator creates a Gemini API client for apiKey.
func NewGenAIGenerator(ctx context.Context, apiKey string) (*GenAIGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIGenerator{client: client}, nil
}

// Generate implements Generator.
func (g *GenAIGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// New returns the advisor for the given configuration: a GeminiAdvisor when
// apiKey is set, otherwise Static.
func New(ctx context.Context, apiKey, model string, timeout time.Duration) (Advisor, error) {
	if apiKey == "" {
		return Static{}, nil
	}
	gen, err := NewGenAIGenerator(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return NewGeminiAdvisor(gen, model, timeout), nil
}
