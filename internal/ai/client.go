// Package ai implements the two model-backed enrichment calls: batch
// transaction categorization and plain-language narrative generation.
// Responses are validated strictly; a malformed response is an error and
// never applied partially.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"nmorand/spendsight/internal/models"

	"github.com/shopspring/decimal"
)

// MaxCategorizeItems caps how many candidates a single categorization
// request may carry.
const MaxCategorizeItems = 120

// MaxNarrativeLines caps how many narrative lines are accepted from a
// summary response.
const MaxNarrativeLines = 4

// Candidate is one transaction offered to the model for recategorization.
type Candidate struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Merchant        string          `json:"merchant"`
	CurrentCategory models.Category `json:"currentCategory"`
}

// CategoryResult is one validated category suggestion.
type CategoryResult struct {
	ID         string
	Category   models.Category
	Confidence float64
}

// SummarySnapshot is the aggregate view sent with a narrative request.
type SummarySnapshot struct {
	Transactions   int                    `json:"transactions"`
	TotalIncome    decimal.Decimal        `json:"totalIncome"`
	TotalSpend     decimal.Decimal        `json:"totalSpend"`
	TopCategory    models.TopCategory     `json:"topCategory"`
	MonthOverMonth models.MonthOverMonth  `json:"monthOverMonth"`
	Subscriptions  []models.Subscription  `json:"subscriptions"`
	BiggestSpike   string                 `json:"biggestSpike"`
	HealthScore    int                    `json:"healthScore"`
	AnomalyCounts  models.AnomalyCounts   `json:"anomalyCounts"`
}

// Client is the interface both enrichment calls go through, so the session
// logic can be tested without network access.
type Client interface {
	// CategorizeBatch suggests categories for up to MaxCategorizeItems
	// candidates. Invalid suggestions are dropped, not errors; a response
	// whose overall shape is wrong is an error.
	CategorizeBatch(ctx context.Context, candidates []Candidate) ([]CategoryResult, error)

	// NarrativeLines produces at most MaxNarrativeLines plain-language
	// summary lines for the snapshot.
	NarrativeLines(ctx context.Context, snapshot SummarySnapshot) ([]string, error)
}

// Wire shapes the model is asked to produce.
type categorizeResponse struct {
	Items []categorizeItem `json:"items"`
}

type categorizeItem struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence"`
}

type narrativeResponse struct {
	Lines []string `json:"lines"`
}

var fencedJSONRe = regexp.MustCompile("(?is)```json\\s*(.*?)```")

// extractJSONBlock pulls a JSON document out of raw model output. It tries
// the text verbatim, then a ```json fenced block, then the first brace-
// delimited span.
func extractJSONBlock(text string) ([]byte, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	if json.Valid([]byte(text)) {
		return []byte(text), true
	}

	if match := fencedJSONRe.FindStringSubmatch(text); len(match) == 2 {
		candidate := strings.TrimSpace(match[1])
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), true
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), true
		}
	}
	return nil, false
}

// parseCategorizeResponse decodes and validates a categorization response.
// Items with an unknown id or a category outside the fixed set are
// silently dropped; a response without a usable items list is an error.
func parseCategorizeResponse(text string, candidates []Candidate) ([]CategoryResult, error) {
	raw, ok := extractJSONBlock(text)
	if !ok {
		return nil, fmt.Errorf("categorization response is not valid JSON")
	}

	var parsed categorizeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Items == nil {
		return nil, fmt.Errorf("categorization response has no items list")
	}

	known := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		known[candidate.ID] = struct{}{}
	}

	var results []CategoryResult
	for _, item := range parsed.Items {
		if _, ok := known[item.ID]; !ok {
			continue
		}
		category, err := models.ParseCategory(item.Category)
		if err != nil {
			continue
		}
		result := CategoryResult{ID: item.ID, Category: category}
		if item.Confidence != nil {
			result.Confidence = *item.Confidence
		}
		results = append(results, result)
	}
	return results, nil
}

// parseNarrativeResponse decodes and validates a narrative response,
// keeping at most the first MaxNarrativeLines non-empty trimmed lines.
func parseNarrativeResponse(text string) ([]string, error) {
	raw, ok := extractJSONBlock(text)
	if !ok {
		return nil, fmt.Errorf("narrative response is not valid JSON")
	}

	var parsed narrativeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Lines == nil {
		return nil, fmt.Errorf("narrative response has no lines list")
	}

	var lines []string
	for _, line := range parsed.Lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == MaxNarrativeLines {
			break
		}
	}
	return lines, nil
}
