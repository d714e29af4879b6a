package categorizer

import (
	"strings"

	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"
)

// keywordHitScore is how much each distinct keyword match contributes,
// weighting rule hits above a single unit of merchant history.
const keywordHitScore = 2

// Context carries the lookup state a single classification depends on.
type Context struct {
	// MerchantOverrides maps merchant name to a pinned category. Overrides
	// bypass scoring entirely but never beat the income rule.
	MerchantOverrides map[string]models.Category

	// Stats is the running per-merchant history for the current pass.
	Stats MerchantStats
}

// Classifier scores a single transaction against the keyword rule table
// plus learned merchant history. It always returns a member of the fixed
// category set and never fails.
type Classifier struct {
	rules  []models.CategoryRule
	logger logging.Logger
}

// NewClassifier creates a Classifier with the given rule table. A nil or
// empty table falls back to the built-in defaults.
func NewClassifier(rules []models.CategoryRule, logger logging.Logger) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Classifier{rules: rules, logger: logger}
}

// Classify resolves the category for one transaction.
//
// Decision order, first match wins:
//  1. positive amount: Income, unconditionally
//  2. merchant override: that category
//  3. highest combined keyword + merchant-history score, earlier rule wins ties
//  4. Other with recurrence language in the description: Subscriptions
func (c *Classifier) Classify(tx models.Transaction, ctx Context) models.Category {
	if tx.Amount.IsPositive() {
		return models.CategoryIncome
	}

	if override, ok := ctx.MerchantOverrides[tx.Merchant]; ok {
		c.logger.WithFields(
			logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant},
			logging.Field{Key: logging.FieldCategory, Value: override},
		).Debug("Category pinned by merchant override")
		return override
	}

	description := strings.ToLower(tx.Description)
	best := models.CategoryOther
	bestScore := 0

	for _, rule := range c.rules {
		score := c.keywordScore(description, rule.Keywords)
		score += ctx.Stats.Count(tx.Merchant, rule.Name)
		if score > bestScore {
			best = rule.Name
			bestScore = score
		}
	}

	if best == models.CategoryOther && recurrenceRe.MatchString(description) {
		return models.CategorySubscriptions
	}

	return best
}

// keywordScore awards keywordHitScore for every distinct keyword found in
// the lower-cased description.
func (c *Classifier) keywordScore(description string, keywords []string) int {
	score := 0
	for _, keyword := range keywords {
		if strings.Contains(description, keyword) {
			score += keywordHitScore
		}
	}
	return score
}
