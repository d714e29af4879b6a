package categorizer

import (
	"testing"
	"time"

	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnAt(id, description, merchant, amount string, day int) models.Transaction {
	return models.Transaction{
		ID:          id,
		Date:        time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Merchant:    merchant,
	}
}

func TestApplyAssignsEveryTransaction(t *testing.T) {
	pipeline := NewPipeline(nil, &logging.MockLogger{})

	txns := []models.Transaction{
		txnAt("t1", "ACME CORP SALARY", "Acme Corp Salary", "4200.00", 1),
		txnAt("t2", "WHOLE FOODS GROCERY", "Whole Foods Grocery", "-86.40", 2),
		txnAt("t3", "ZZYZX HOLDINGS", "Zzyzx Holdings", "-50.00", 3),
	}

	result := pipeline.Apply(txns, nil, nil)
	require.Len(t, result, 3)

	assert.Equal(t, models.CategoryIncome, result[0].Category)
	assert.Equal(t, models.CategoryFood, result[1].Category)
	assert.Equal(t, models.CategoryOther, result[2].Category)
}

func TestApplySortsChronologically(t *testing.T) {
	pipeline := NewPipeline(nil, &logging.MockLogger{})

	txns := []models.Transaction{
		txnAt("late", "ZZYZX", "Zzyzx", "-10.00", 20),
		txnAt("early", "ZZYZX", "Zzyzx", "-10.00", 1),
		txnAt("middle", "ZZYZX", "Zzyzx", "-10.00", 10),
	}

	result := pipeline.Apply(txns, nil, nil)
	require.Len(t, result, 3)
	assert.Equal(t, "early", result[0].ID)
	assert.Equal(t, "middle", result[1].ID)
	assert.Equal(t, "late", result[2].ID)
}

func TestApplyManualEditWins(t *testing.T) {
	pipeline := NewPipeline(nil, &logging.MockLogger{})

	txns := []models.Transaction{
		// A positive amount would normally be Income.
		txnAt("t1", "ACME CORP SALARY", "Acme Corp Salary", "4200.00", 1),
		txnAt("t2", "NETFLIX CHARGE", "Netflix Charge", "-15.49", 2),
	}
	manualEdits := map[string]models.Category{
		"t1": models.CategoryOther,
		"t2": models.CategoryBills,
	}

	result := pipeline.Apply(txns, manualEdits, nil)
	assert.Equal(t, models.CategoryOther, result[0].Category)
	assert.Equal(t, models.CategoryBills, result[1].Category)
}

func TestApplyMerchantHistoryLearning(t *testing.T) {
	pipeline := NewPipeline(nil, &logging.MockLogger{})

	// The first charge classifies Food by keyword; the second has no
	// keyword signal but inherits the merchant's history from the same pass.
	txns := []models.Transaction{
		txnAt("t1", "CORNER SHOP GROCERY", "Corner Shop", "-20.00", 1),
		txnAt("t2", "CORNER SHOP", "Corner Shop", "-22.00", 15),
	}

	result := pipeline.Apply(txns, nil, nil)
	assert.Equal(t, models.CategoryFood, result[0].Category)
	assert.Equal(t, models.CategoryFood, result[1].Category)
}

func TestApplyIsIdempotent(t *testing.T) {
	pipeline := NewPipeline(nil, &logging.MockLogger{})

	txns := []models.Transaction{
		txnAt("t1", "WHOLE FOODS GROCERY", "Whole Foods Grocery", "-86.40", 2),
		txnAt("t2", "SHELL FUEL", "Shell Fuel", "-52.10", 4),
		txnAt("t3", "ZZYZX HOLDINGS", "Zzyzx Holdings", "-50.00", 6),
	}

	first := pipeline.Apply(txns, nil, nil)
	second := pipeline.Apply(txns, nil, nil)
	assert.Equal(t, first, second)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	pipeline := NewPipeline(nil, &logging.MockLogger{})

	txns := []models.Transaction{
		txnAt("t1", "WHOLE FOODS GROCERY", "Whole Foods Grocery", "-86.40", 2),
	}
	pipeline.Apply(txns, nil, nil)

	assert.Equal(t, models.Category(""), txns[0].Category)
}
