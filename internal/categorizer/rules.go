// Package categorizer assigns a category to every transaction in a set.
// Classification runs in strict precedence order: the income rule, merchant
// overrides learned from accepted AI suggestions, then keyword scoring
// combined with per-merchant history accumulated over the same pass.
package categorizer

import (
	"regexp"

	"nmorand/spendsight/internal/models"
)

// DefaultRules is the built-in keyword rule table, used when no
// categories.yaml is present. Keywords are matched case-insensitively as
// substrings of the transaction description.
func DefaultRules() []models.CategoryRule {
	return []models.CategoryRule{
		{Name: models.CategoryFood, Keywords: []string{
			"grocery", "market", "restaurant", "cafe", "pizza", "doordash",
			"ubereats", "coffee", "bakery",
		}},
		{Name: models.CategoryTransport, Keywords: []string{
			"uber", "lyft", "shell", "chevron", "metro", "train", "fuel",
			"parking", "toll", "gas",
		}},
		{Name: models.CategoryShopping, Keywords: []string{
			"amazon", "target", "walmart", "ikea", "mall", "store",
			"best buy", "nike", "purchase",
		}},
		{Name: models.CategoryBills, Keywords: []string{
			"electric", "water", "internet", "rent", "mortgage", "utility",
			"insurance", "phone", "bill", "tax",
		}},
		{Name: models.CategorySubscriptions, Keywords: []string{
			"netflix", "spotify", "prime", "hulu", "icloud", "adobe",
			"subscription", "patreon", "gym", "saas",
		}},
		{Name: models.CategoryOther, Keywords: nil},
	}
}

// recurrenceRe matches language that signals a recurring charge. It rescues
// otherwise-unmatched transactions into Subscriptions.
var recurrenceRe = regexp.MustCompile(`monthly|annual|renew|membership`)
