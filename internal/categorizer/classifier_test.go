package categorizer

import (
	"testing"
	"time"

	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func expense(description, merchant, amount string) models.Transaction {
	return models.Transaction{
		ID:          "tx-" + merchant,
		Date:        time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Merchant:    merchant,
	}
}

func TestClassifyIncomeRule(t *testing.T) {
	classifier := NewClassifier(nil, &logging.MockLogger{})

	// Positive amounts are Income no matter what the description says or
	// what an override pins.
	tx := expense("NETFLIX MONTHLY RENEWAL", "Netflix Monthly Renewal", "4200.00")
	ctx := Context{
		MerchantOverrides: map[string]models.Category{"Netflix Monthly Renewal": models.CategoryFood},
		Stats:             NewMerchantStats(),
	}

	assert.Equal(t, models.CategoryIncome, classifier.Classify(tx, ctx))
}

func TestClassifyKeywords(t *testing.T) {
	classifier := NewClassifier(nil, &logging.MockLogger{})
	ctx := Context{Stats: NewMerchantStats()}

	tests := []struct {
		name        string
		description string
		expected    models.Category
	}{
		{"food keyword", "WHOLE FOODS GROCERY RUN", models.CategoryFood},
		{"transport keyword", "SHELL FUEL STOP", models.CategoryTransport},
		{"shopping keyword", "AMAZON ORDER 112-339", models.CategoryShopping},
		{"bills keyword", "CITY WATER UTILITY", models.CategoryBills},
		{"subscription keyword", "NETFLIX CHARGE", models.CategorySubscriptions},
		{"no keyword", "ZZYZX HOLDINGS LLC", models.CategoryOther},
		{"case insensitive", "netflix charge", models.CategorySubscriptions},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx := expense(tc.description, "Some Merchant", "-10.00")
			assert.Equal(t, tc.expected, classifier.Classify(tx, ctx))
		})
	}
}

func TestClassifyTieGoesToEarlierCategory(t *testing.T) {
	classifier := NewClassifier(nil, &logging.MockLogger{})
	ctx := Context{Stats: NewMerchantStats()}

	// One Food keyword and one Transport keyword score equally; Food is
	// evaluated first and replacement requires a strictly higher score.
	tx := expense("MARKET FUEL CO", "Market Fuel Co", "-25.00")
	assert.Equal(t, models.CategoryFood, classifier.Classify(tx, ctx))
}

func TestClassifyRecurrenceRescue(t *testing.T) {
	classifier := NewClassifier(nil, &logging.MockLogger{})
	ctx := Context{Stats: NewMerchantStats()}

	tests := []struct {
		description string
		expected    models.Category
	}{
		{"CLUB MEMBERSHIP DUES", models.CategorySubscriptions},
		{"ANNUAL LICENSE FEE", models.CategorySubscriptions},
		{"DOMAIN RENEWAL", models.CategorySubscriptions},
		{"ZZYZX HOLDINGS LLC", models.CategoryOther},
	}

	for _, tc := range tests {
		tx := expense(tc.description, "Some Merchant", "-30.00")
		assert.Equal(t, tc.expected, classifier.Classify(tx, ctx), tc.description)
	}
}

func TestClassifyMerchantOverride(t *testing.T) {
	classifier := NewClassifier(nil, &logging.MockLogger{})

	tx := expense("NETFLIX CHARGE", "Netflix Charge", "-15.49")
	ctx := Context{
		MerchantOverrides: map[string]models.Category{"Netflix Charge": models.CategoryBills},
		Stats:             NewMerchantStats(),
	}

	// The override beats keyword scoring.
	assert.Equal(t, models.CategoryBills, classifier.Classify(tx, ctx))
}

func TestClassifyMerchantHistoryTipsScoring(t *testing.T) {
	classifier := NewClassifier(nil, &logging.MockLogger{})

	stats := NewMerchantStats()
	stats.Increment("Corner Shop", models.CategoryFood)
	stats.Increment("Corner Shop", models.CategoryFood)
	stats.Increment("Corner Shop", models.CategoryFood)
	ctx := Context{Stats: stats}

	// One Transport keyword scores 2; three prior Food assignments for the
	// same merchant score 3 and win.
	tx := expense("CORNER SHOP FUEL", "Corner Shop", "-18.00")
	assert.Equal(t, models.CategoryFood, classifier.Classify(tx, ctx))
}
