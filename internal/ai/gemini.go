package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient talks to the Google Gemini API for both enrichment calls.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	logger logging.Logger
}

// NewGeminiClient creates a client for the given model name using the
// provided API key.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
		name:   modelName,
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// CategorizeBatch asks the model to re-categorize up to MaxCategorizeItems
// candidate transactions, returning only validated suggestions.
func (c *GeminiClient) CategorizeBatch(ctx context.Context, candidates []Candidate) ([]CategoryResult, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if len(candidates) > MaxCategorizeItems {
		candidates = candidates[:MaxCategorizeItems]
	}

	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode candidates: %w", err)
	}

	categoryNames := make([]string, len(models.Categories))
	for i, category := range models.Categories {
		categoryNames[i] = string(category)
	}

	prompt := strings.Join([]string{
		"You are a financial transaction categorizer.",
		fmt.Sprintf("Allowed categories only: %s.", strings.Join(categoryNames, ", ")),
		`Return valid JSON only with this shape: {"items":[{"id":"string","category":"string","confidence":0.0}]}`,
		"Do not include markdown or extra keys.",
		"Transactions:",
		string(payload),
	}, "\n")

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	results, err := parseCategorizeResponse(text, candidates)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(
		logging.Field{Key: logging.FieldModel, Value: c.name},
		logging.Field{Key: logging.FieldCount, Value: len(results)},
	).Debug("Model returned category suggestions")
	return results, nil
}

// NarrativeLines asks the model for up to MaxNarrativeLines plain-language
// summary lines over the snapshot.
func (c *GeminiClient) NarrativeLines(ctx context.Context, snapshot SummarySnapshot) ([]string, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	prompt := strings.Join([]string{
		"You are a financial assistant explaining spending data in plain language.",
		`Return valid JSON only with this shape: {"lines":["line1","line2","line3","line4"]}.`,
		"Constraints:",
		"- 4 lines only.",
		"- Keep each line under 140 characters.",
		"- Use neutral and practical tone.",
		"Data:",
		string(payload),
	}, "\n")

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseNarrativeResponse(text)
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
