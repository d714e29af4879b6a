// Package merchant derives a normalized counterparty name from the free-text
// description of a bank transaction.
package merchant

import (
	"regexp"
	"strings"
)

// FallbackName is returned when no usable token survives normalization.
const FallbackName = "Unknown Merchant"

// maxTokens caps how many tokens of the cleaned description make up the
// merchant label.
const maxTokens = 3

// stopWords are generic banking terms that carry no merchant identity.
var stopWords = map[string]struct{}{
	"payment":    {},
	"purchase":   {},
	"debit":      {},
	"credit":     {},
	"card":       {},
	"transfer":   {},
	"online":     {},
	"pos":        {},
	"ach":        {},
	"withdrawal": {},
	"check":      {},
	"txn":        {},
}

var (
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9\s]`)
	bareDigitRe = regexp.MustCompile(`\b\d+\b`)
)

// Extract produces a display-cased merchant label from a description.
// It is a pure function: lower-case, strip punctuation and standalone
// numbers, drop one-letter tokens and stop words, keep the first three
// remaining tokens, and title-case the result.
func Extract(description string) string {
	cleaned := strings.ToLower(description)
	cleaned = nonAlnumRe.ReplaceAllString(cleaned, " ")
	cleaned = bareDigitRe.ReplaceAllString(cleaned, " ")

	var kept []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 1 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		kept = append(kept, token)
		if len(kept) == maxTokens {
			break
		}
	}

	if len(kept) == 0 {
		return FallbackName
	}
	return titleCase(kept)
}

func titleCase(tokens []string) string {
	cased := make([]string, len(tokens))
	for i, token := range tokens {
		cased[i] = strings.ToUpper(token[:1]) + token[1:]
	}
	return strings.Join(cased, " ")
}
