package anomaly

import (
	"testing"
	"time"

	"nmorand/spendsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categorized(id, merchant, amount string, category models.Category, year int, month time.Month, day int) models.Transaction {
	return models.Transaction{
		ID:       id,
		Date:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.RequireFromString(amount),
		Merchant: merchant,
		Category: category,
	}
}

func alertsOfType(report models.AnomalyReport, kind models.AnomalyType) []models.Alert {
	var out []models.Alert
	for _, alert := range report.Alerts {
		if alert.Type == kind {
			out = append(out, alert)
		}
	}
	return out
}

func TestDetectEmptyInput(t *testing.T) {
	report := Detect(nil)

	assert.Empty(t, report.Alerts)
	assert.Empty(t, report.ByTransaction)
	assert.Equal(t, 0, report.Counts.Total)
}

func TestDetectSpike(t *testing.T) {
	// Food expenses 50, 52, 48 and 300: mean 112.50, threshold 196.875,
	// only the 300 charge is a spike with ratio 300/112.5.
	txns := []models.Transaction{
		categorized("t1", "Grocer A", "-50.00", models.CategoryFood, 2025, time.June, 1),
		categorized("t2", "Grocer B", "-52.00", models.CategoryFood, 2025, time.June, 8),
		categorized("t3", "Grocer C", "-48.00", models.CategoryFood, 2025, time.June, 15),
		categorized("t4", "La Trattoria", "-300.00", models.CategoryFood, 2025, time.June, 22),
	}

	report := Detect(txns)
	spikes := alertsOfType(report, models.AnomalySpike)
	require.Len(t, spikes, 1)

	assert.Equal(t, "t4", spikes[0].Transaction.ID)
	assert.Equal(t, models.SeverityHigh, spikes[0].Severity)
	assert.InDelta(t, 2.6667, spikes[0].Ratio, 0.001)
	assert.Contains(t, spikes[0].Message, "Food spend spike")
}

func TestDetectSpikeExactThresholdNotFlagged(t *testing.T) {
	// With charges of 10 and 70 the mean is 40 and the threshold exactly
	// 70; the comparison is strict so nothing fires.
	txns := []models.Transaction{
		categorized("t1", "Shop A", "-10.00", models.CategoryShopping, 2025, time.June, 1),
		categorized("t2", "Shop B", "-70.00", models.CategoryShopping, 2025, time.June, 10),
	}

	report := Detect(txns)
	assert.Empty(t, alertsOfType(report, models.AnomalySpike))
}

func TestDetectSpikeIgnoresIncome(t *testing.T) {
	txns := []models.Transaction{
		categorized("t1", "Acme Corp", "4200.00", models.CategoryIncome, 2025, time.June, 1),
		categorized("t2", "Acme Corp", "9000.00", models.CategoryIncome, 2025, time.July, 1),
	}

	report := Detect(txns)
	assert.Empty(t, alertsOfType(report, models.AnomalySpike))
}

func TestDetectNewMerchant(t *testing.T) {
	txns := []models.Transaction{
		categorized("t1", "Grocer A", "-50.00", models.CategoryFood, 2025, time.June, 1),
		categorized("t2", "Grocer A", "-55.00", models.CategoryFood, 2025, time.June, 15),
		categorized("t3", "Grocer B", "-20.00", models.CategoryFood, 2025, time.June, 20),
	}

	report := Detect(txns)
	newMerchants := alertsOfType(report, models.AnomalyNewMerchant)
	require.Len(t, newMerchants, 2)

	ids := []string{newMerchants[0].Transaction.ID, newMerchants[1].Transaction.ID}
	assert.Contains(t, ids, "t1")
	assert.Contains(t, ids, "t3")
	assert.Equal(t, models.SeverityLow, newMerchants[0].Severity)
}

func TestDetectNewMerchantCaseInsensitive(t *testing.T) {
	txns := []models.Transaction{
		categorized("t1", "NETFLIX", "-15.49", models.CategorySubscriptions, 2025, time.June, 1),
		categorized("t2", "Netflix", "-15.49", models.CategorySubscriptions, 2025, time.July, 1),
	}

	report := Detect(txns)
	assert.Len(t, alertsOfType(report, models.AnomalyNewMerchant), 1)
}

func TestDetectNewMerchantIntroducedByIncome(t *testing.T) {
	// An income transaction introduces its merchant; the later expense from
	// the same merchant is not "new" anymore.
	txns := []models.Transaction{
		categorized("t1", "Acme Corp", "100.00", models.CategoryIncome, 2025, time.June, 1),
		categorized("t2", "Acme Corp", "-30.00", models.CategoryOther, 2025, time.June, 15),
	}

	report := Detect(txns)
	assert.Empty(t, alertsOfType(report, models.AnomalyNewMerchant))
}

func TestDetectRecurringChange(t *testing.T) {
	txns := []models.Transaction{
		categorized("t1", "Iron Temple Gym", "-100.00", models.CategorySubscriptions, 2025, time.June, 5),
		categorized("t2", "Iron Temple Gym", "-160.00", models.CategorySubscriptions, 2025, time.July, 5),
	}

	report := Detect(txns)
	changes := alertsOfType(report, models.AnomalyRecurringChange)
	require.Len(t, changes, 1)

	assert.Equal(t, "t2", changes[0].Transaction.ID)
	assert.Equal(t, models.SeverityMedium, changes[0].Severity)
	assert.Contains(t, changes[0].Message, "changed from 100.00 to 160.00")
}

func TestDetectRecurringChangeGapWindow(t *testing.T) {
	tests := []struct {
		name     string
		gapDays  int
		expected int
	}{
		{"below window", 19, 0},
		{"window start", 20, 1},
		{"window end", 40, 1},
		{"above window", 41, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
			txns := []models.Transaction{
				{ID: "t1", Date: start, Amount: decimal.RequireFromString("-100.00"),
					Merchant: "Gym Co", Category: models.CategorySubscriptions},
				{ID: "t2", Date: start.AddDate(0, 0, tc.gapDays), Amount: decimal.RequireFromString("-160.00"),
					Merchant: "Gym Co", Category: models.CategorySubscriptions},
			}

			report := Detect(txns)
			assert.Len(t, alertsOfType(report, models.AnomalyRecurringChange), tc.expected)
		})
	}
}

func TestDetectRecurringChangeThresholds(t *testing.T) {
	tests := []struct {
		name      string
		oldAmount string
		newAmount string
		expected  int
	}{
		{"ratio exactly 0.15 not flagged", "-100.00", "-115.00", 0},
		{"ratio just above 0.15 flagged", "-100.00", "-115.02", 1},
		{"big ratio but change under 5", "-20.00", "-23.20", 0},
		{"decrease counts too", "-100.00", "-80.00", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txns := []models.Transaction{
				categorized("t1", "Gym Co", tc.oldAmount, models.CategorySubscriptions, 2025, time.June, 5),
				categorized("t2", "Gym Co", tc.newAmount, models.CategorySubscriptions, 2025, time.July, 5),
			}

			report := Detect(txns)
			assert.Len(t, alertsOfType(report, models.AnomalyRecurringChange), tc.expected)
		})
	}
}

func TestDetectAlertsSortedDateDescending(t *testing.T) {
	txns := []models.Transaction{
		categorized("t1", "Grocer A", "-50.00", models.CategoryFood, 2025, time.June, 1),
		categorized("t2", "Grocer B", "-20.00", models.CategoryFood, 2025, time.June, 20),
		categorized("t3", "Grocer C", "-30.00", models.CategoryFood, 2025, time.June, 10),
	}

	report := Detect(txns)
	require.NotEmpty(t, report.Alerts)
	for i := 1; i < len(report.Alerts); i++ {
		assert.False(t, report.Alerts[i-1].Transaction.Date.Before(report.Alerts[i].Transaction.Date))
	}
}

func TestDetectCounts(t *testing.T) {
	txns := []models.Transaction{
		categorized("t1", "Grocer A", "-50.00", models.CategoryFood, 2025, time.June, 1),
		categorized("t2", "Grocer A", "-52.00", models.CategoryFood, 2025, time.June, 8),
		categorized("t3", "Grocer A", "-48.00", models.CategoryFood, 2025, time.June, 15),
		categorized("t4", "La Trattoria", "-300.00", models.CategoryFood, 2025, time.June, 22),
		categorized("t5", "Gym Co", "-100.00", models.CategorySubscriptions, 2025, time.June, 5),
		categorized("t6", "Gym Co", "-160.00", models.CategorySubscriptions, 2025, time.July, 5),
	}

	report := Detect(txns)
	assert.Equal(t, report.Counts.Total, len(report.Alerts))
	assert.Equal(t, 1, report.Counts.RecurringChanges)
	assert.Equal(t, 3, report.Counts.NewMerchants)
	assert.GreaterOrEqual(t, report.Counts.Spikes, 1)
}

func TestDetectDoesNotMutateInput(t *testing.T) {
	txns := []models.Transaction{
		categorized("t2", "Grocer B", "-20.00", models.CategoryFood, 2025, time.June, 20),
		categorized("t1", "Grocer A", "-50.00", models.CategoryFood, 2025, time.June, 1),
	}

	Detect(txns)
	assert.Equal(t, "t2", txns[0].ID)
}
