// Package anomaly flags deviations in a categorized transaction set. Three
// independent passes run over the same chronological ordering: category
// spend spikes, first-seen merchants, and changed recurring amounts.
package anomaly

import (
	"fmt"
	"sort"
	"strings"

	"nmorand/spendsight/internal/dateutils"
	"nmorand/spendsight/internal/models"

	"github.com/shopspring/decimal"
)

// Detection thresholds. A spike is an expense strictly above spikeFactor
// times its category mean; a recurring change needs a 20-40 day gap, a
// relative change above changeRatioMin and an absolute change of at least
// minChangeAmount.
var (
	spikeFactor     = decimal.RequireFromString("1.75")
	changeRatioMin  = decimal.RequireFromString("0.15")
	minChangeAmount = decimal.NewFromInt(5)
)

// Recurring gap window in days, inclusive on both ends.
const (
	minRecurringGapDays = 20
	maxRecurringGapDays = 40
)

// Detect runs all three passes and assembles the report. It is total over
// any well-formed input, including the empty set, and never mutates its
// argument.
func Detect(txns []models.Transaction) models.AnomalyReport {
	ordered := models.SortByDate(txns)

	byTransaction := make(map[string][]models.Anomaly)
	var alerts []models.Alert

	record := func(tx models.Transaction, a models.Anomaly) {
		byTransaction[tx.ID] = append(byTransaction[tx.ID], a)
		alerts = append(alerts, models.Alert{Anomaly: a, Transaction: tx})
	}

	detectSpikes(ordered, record)
	detectNewMerchants(ordered, record)
	detectRecurringChanges(ordered, record)

	// Date descending; ties keep detection order.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[j].Transaction.Date.Before(alerts[i].Transaction.Date)
	})

	return models.AnomalyReport{
		ByTransaction: byTransaction,
		Alerts:        alerts,
		Counts:        models.CountAlerts(alerts),
	}
}

// detectSpikes flags expenses strictly above spikeFactor times the mean
// absolute expense of their category.
func detectSpikes(ordered []models.Transaction, record func(models.Transaction, models.Anomaly)) {
	sums := make(map[models.Category]decimal.Decimal)
	counts := make(map[models.Category]int)
	for _, tx := range ordered {
		if !tx.IsExpense() || tx.Category == models.CategoryIncome {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.AbsAmount())
		counts[tx.Category]++
	}

	means := make(map[models.Category]decimal.Decimal, len(sums))
	for category, sum := range sums {
		means[category] = sum.Div(decimal.NewFromInt(int64(counts[category])))
	}

	for _, tx := range ordered {
		if !tx.IsExpense() || tx.Category == models.CategoryIncome {
			continue
		}
		mean := means[tx.Category]
		spend := tx.AbsAmount()
		if !mean.IsPositive() || spend.Cmp(mean.Mul(spikeFactor)) <= 0 {
			continue
		}
		record(tx, models.Anomaly{
			Type:     models.AnomalySpike,
			Severity: models.SeverityHigh,
			Message: fmt.Sprintf("%s spend spike at %s (avg %s).",
				tx.Category, spend.StringFixed(2), mean.StringFixed(2)),
			Ratio: spend.Div(mean).InexactFloat64(),
		})
	}
}

// detectNewMerchants flags the first expense from each merchant, tracked
// case-insensitively. Merchants enter the seen set regardless of sign, so
// an income transaction still "introduces" its merchant.
func detectNewMerchants(ordered []models.Transaction, record func(models.Transaction, models.Anomaly)) {
	seen := make(map[string]struct{})
	for _, tx := range ordered {
		key := strings.ToLower(tx.Merchant)
		if _, known := seen[key]; !known && tx.IsExpense() {
			record(tx, models.Anomaly{
				Type:     models.AnomalyNewMerchant,
				Severity: models.SeverityLow,
				Message:  fmt.Sprintf("First seen merchant: %s.", tx.Merchant),
			})
		}
		seen[key] = struct{}{}
	}
}

// detectRecurringChanges compares immediate chronological neighbors within
// each merchant's expense history. Only pairs in the recurring gap window
// are considered; the later transaction of a qualifying pair is flagged.
func detectRecurringChanges(ordered []models.Transaction, record func(models.Transaction, models.Anomaly)) {
	byMerchant := make(map[string][]models.Transaction)
	var merchants []string
	for _, tx := range ordered {
		if !tx.IsExpense() {
			continue
		}
		if _, ok := byMerchant[tx.Merchant]; !ok {
			merchants = append(merchants, tx.Merchant)
		}
		byMerchant[tx.Merchant] = append(byMerchant[tx.Merchant], tx)
	}

	// Iterate merchants in first-appearance order for deterministic output.
	for _, merchant := range merchants {
		group := byMerchant[merchant]
		for i := 1; i < len(group); i++ {
			previous, current := group[i-1], group[i]
			gap := dateutils.DaysBetween(previous.Date, current.Date)
			if gap < minRecurringGapDays || gap > maxRecurringGapDays {
				continue
			}

			oldAmount := previous.AbsAmount()
			newAmount := current.AbsAmount()
			if oldAmount.IsZero() {
				continue
			}
			change := newAmount.Sub(oldAmount).Abs()
			ratio := change.Div(oldAmount)
			if ratio.Cmp(changeRatioMin) <= 0 || change.Cmp(minChangeAmount) < 0 {
				continue
			}
			record(current, models.Anomaly{
				Type:     models.AnomalyRecurringChange,
				Severity: models.SeverityMedium,
				Message: fmt.Sprintf("%s recurring amount changed from %s to %s.",
					current.Merchant, oldAmount.StringFixed(2), newAmount.StringFixed(2)),
			})
		}
	}
}
