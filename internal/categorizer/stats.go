package categorizer

import "nmorand/spendsight/internal/models"

// MerchantStats counts, per merchant, how many transactions have already
// been assigned to each category during the current pipeline pass. It is
// seeded empty on every invocation and never persisted, which keeps
// repeated recomputation reproducible.
type MerchantStats map[string]map[models.Category]int

// NewMerchantStats returns an empty accumulator.
func NewMerchantStats() MerchantStats {
	return make(MerchantStats)
}

// Count returns how many prior transactions from merchant were assigned
// the given category.
func (s MerchantStats) Count(merchant string, category models.Category) int {
	return s[merchant][category]
}

// Increment records one more assignment of category for merchant.
func (s MerchantStats) Increment(merchant string, category models.Category) {
	byCategory, ok := s[merchant]
	if !ok {
		byCategory = make(map[models.Category]int)
		s[merchant] = byCategory
	}
	byCategory[category]++
}
