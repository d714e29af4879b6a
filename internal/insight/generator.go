// Package insight derives the summary view of a categorized transaction
// set: top spend category, month-over-month trend, likely subscriptions, a
// 0-100 health score and four narrative lines.
package insight

import (
	"fmt"
	"sort"
	"strings"

	"nmorand/spendsight/internal/dateutils"
	"nmorand/spendsight/internal/models"

	"github.com/shopspring/decimal"
)

// NoSpikeSummary is reported when the anomaly report carries no spikes.
const NoSpikeSummary = "No major spend spikes detected."

// MonthDataFallbackLabel is the month-over-month label when fewer than two
// calendar months are present.
const MonthDataFallbackLabel = "Need 2+ months of data"

// Health score tuning. The score starts at baseScore and moves with net
// cash flow, spending trend and anomaly density before clamping to 0-100.
const (
	baseScore            = 70
	positiveNetBonus     = 12
	negativeNetPenalty   = 14
	trendImprovingBonus  = 8
	trendWorseningMalus  = 10
	trendWorseningPct    = 15.0
	trendImprovingPct    = -8.0
	spikePenalty         = 4
	recurringPenalty     = 3
	maxSubscriptionCount = 5
)

// Generate computes Insights from a categorized set and its anomaly
// report. It is total over well-formed input, including the empty set.
func Generate(txns []models.Transaction, report models.AnomalyReport) models.Insights {
	top := topSpendingCategory(txns)
	monthOverMonth := monthOverMonthTrend(txns)
	subscriptions := DetectSubscriptions(txns)
	if len(subscriptions) > maxSubscriptionCount {
		subscriptions = subscriptions[:maxSubscriptionCount]
	}
	score := healthScore(txns, report.Counts, monthOverMonth)
	spikeSummary := biggestSpike(report.Alerts)

	return models.Insights{
		TopCategory:    top,
		MonthOverMonth: monthOverMonth,
		Subscriptions:  subscriptions,
		HealthScore:    score,
		SpikeSummary:   spikeSummary,
		Lines:          narrativeLines(top, monthOverMonth, subscriptions, spikeSummary),
	}
}

// topSpendingCategory sums absolute expenses per non-Income category and
// returns the largest. Earlier categories win ties; "N/A" when there is no
// expense at all.
func topSpendingCategory(txns []models.Transaction) models.TopCategory {
	totals := make(map[models.Category]decimal.Decimal)
	for _, tx := range txns {
		if tx.IsExpense() && tx.Category != models.CategoryIncome {
			totals[tx.Category] = totals[tx.Category].Add(tx.AbsAmount())
		}
	}
	if len(totals) == 0 {
		return models.TopCategory{Category: "N/A", Amount: decimal.Zero}
	}

	var best models.Category
	bestAmount := decimal.Zero
	for _, category := range models.ExpenseCategories {
		if total, ok := totals[category]; ok && total.Cmp(bestAmount) > 0 {
			best = category
			bestAmount = total
		}
	}
	return models.TopCategory{Category: string(best), Amount: bestAmount}
}

// monthOverMonthTrend buckets expense totals by calendar month and
// compares the two most recent months present in the data.
func monthOverMonthTrend(txns []models.Transaction) models.MonthOverMonth {
	monthly := make(map[string]decimal.Decimal)
	for _, tx := range txns {
		if tx.IsExpense() {
			key := dateutils.MonthKey(tx.Date)
			monthly[key] = monthly[key].Add(tx.AbsAmount())
		}
	}

	months := make([]string, 0, len(monthly))
	for key := range monthly {
		months = append(months, key)
	}
	sort.Strings(months)

	if len(months) < 2 {
		return models.MonthOverMonth{
			Latest:   decimal.Zero,
			Previous: decimal.Zero,
			Label:    MonthDataFallbackLabel,
		}
	}

	latestKey := months[len(months)-1]
	previousKey := months[len(months)-2]
	latest := monthly[latestKey]
	previous := monthly[previousKey]

	changePct := 0.0
	if !previous.IsZero() {
		changePct = latest.Sub(previous).Div(previous).InexactFloat64() * 100
	}
	return models.MonthOverMonth{
		ChangePct: changePct,
		Latest:    latest,
		Previous:  previous,
		Label:     fmt.Sprintf("%s -> %s", previousKey, latestKey),
	}
}

// DetectSubscriptions finds merchants whose expense history shows at least
// one roughly monthly (20-40 day) gap between consecutive charges. The
// reported average is over all of the merchant's expenses, sorted
// descending; ties keep first-appearance order.
func DetectSubscriptions(txns []models.Transaction) []models.Subscription {
	ordered := models.SortByDate(txns)

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

	var subscriptions []models.Subscription
	for _, merchant := range merchants {
		group := byMerchant[merchant]
		if len(group) < 2 {
			continue
		}

		recurringHits := 0
		for i := 1; i < len(group); i++ {
			gap := dateutils.DaysBetween(group[i-1].Date, group[i].Date)
			if gap >= 20 && gap <= 40 {
				recurringHits++
			}
		}
		if recurringHits == 0 {
			continue
		}

		sum := decimal.Zero
		for _, tx := range group {
			sum = sum.Add(tx.AbsAmount())
		}
		avg := sum.Div(decimal.NewFromInt(int64(len(group)))).Round(2)
		subscriptions = append(subscriptions, models.Subscription{
			Merchant:  merchant,
			AvgAmount: avg,
		})
	}

	sort.SliceStable(subscriptions, func(i, j int) bool {
		return subscriptions[i].AvgAmount.Cmp(subscriptions[j].AvgAmount) > 0
	})
	return subscriptions
}

// healthScore folds net cash flow, the spending trend and anomaly density
// into a single 0-100 heuristic.
func healthScore(txns []models.Transaction, counts models.AnomalyCounts, trend models.MonthOverMonth) int {
	income := decimal.Zero
	spend := decimal.Zero
	for _, tx := range txns {
		if tx.IsIncome() {
			income = income.Add(tx.Amount)
		} else if tx.IsExpense() {
			spend = spend.Add(tx.AbsAmount())
		}
	}

	score := baseScore
	if income.Sub(spend).IsPositive() {
		score += positiveNetBonus
	} else {
		score -= negativeNetPenalty
	}

	if trend.ChangePct > trendWorseningPct {
		score -= trendWorseningMalus
	} else if trend.ChangePct < trendImprovingPct {
		score += trendImprovingBonus
	}

	score -= counts.Spikes * spikePenalty
	score -= counts.RecurringChanges * recurringPenalty

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// biggestSpike describes the highest-ratio spike alert; the first maximum
// wins ties.
func biggestSpike(alerts []models.Alert) string {
	var biggest *models.Alert
	for i := range alerts {
		if alerts[i].Type != models.AnomalySpike {
			continue
		}
		if biggest == nil || alerts[i].Ratio > biggest.Ratio {
			biggest = &alerts[i]
		}
	}
	if biggest == nil {
		return NoSpikeSummary
	}
	return fmt.Sprintf("%s in %s: %s",
		biggest.Transaction.Merchant, biggest.Transaction.Category, biggest.Message)
}

// narrativeLines builds the four deterministic summary strings.
func narrativeLines(
	top models.TopCategory,
	trend models.MonthOverMonth,
	subscriptions []models.Subscription,
	spikeSummary string,
) []string {
	subscriptionLine := "No strong recurring subscriptions found yet."
	if len(subscriptions) > 0 {
		names := make([]string, len(subscriptions))
		for i, sub := range subscriptions {
			names[i] = sub.Merchant
		}
		subscriptionLine = fmt.Sprintf("Likely subscriptions: %s.", strings.Join(names, ", "))
	}

	return []string{
		fmt.Sprintf("Top spending category is %s at %s.", top.Category, top.Amount.StringFixed(2)),
		fmt.Sprintf("Monthly spending change is %.1f%% (%s).", trend.ChangePct, trend.Label),
		subscriptionLine,
		fmt.Sprintf("Biggest spike signal: %s", spikeSummary),
	}
}
