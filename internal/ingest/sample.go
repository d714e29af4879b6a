package ingest

import (
	"fmt"
	"time"

	"nmorand/spendsight/internal/merchant"
	"nmorand/spendsight/internal/models"

	"github.com/shopspring/decimal"
)

type sampleRecord struct {
	date        string
	description string
	amount      string
}

// Two months of plausible activity: salary income, groceries, commuting,
// a couple of monthly subscriptions (one with a price bump) and one
// outsized restaurant bill to exercise spike detection.
var sampleRecords = []sampleRecord{
	{"2025-06-01", "ACME CORP SALARY PAYMENT", "4200.00"},
	{"2025-06-02", "WHOLE FOODS MARKET 0452", "-86.40"},
	{"2025-06-03", "NETFLIX MONTHLY RENEWAL", "-15.49"},
	{"2025-06-04", "SHELL GAS STATION 2231", "-52.10"},
	{"2025-06-05", "IRON TEMPLE GYM MEMBERSHIP", "-45.00"},
	{"2025-06-08", "STARBUCKS COFFEE #1189", "-7.85"},
	{"2025-06-10", "AMAZON MARKETPLACE ORDER", "-134.99"},
	{"2025-06-12", "CITY WATER UTILITY BILL", "-61.30"},
	{"2025-06-15", "SPOTIFY PREMIUM SUBSCRIPTION", "-10.99"},
	{"2025-06-18", "UBER TRIP HELP.UBER.COM", "-23.40"},
	{"2025-06-21", "TRADER JOES GROCERY 118", "-72.15"},
	{"2025-06-25", "VERIZON WIRELESS PHONE BILL", "-89.99"},
	{"2025-07-01", "ACME CORP SALARY PAYMENT", "4200.00"},
	{"2025-07-02", "WHOLE FOODS MARKET 0452", "-91.20"},
	{"2025-07-03", "NETFLIX MONTHLY RENEWAL", "-15.49"},
	{"2025-07-05", "IRON TEMPLE GYM MEMBERSHIP", "-59.00"},
	{"2025-07-07", "SHELL GAS STATION 2231", "-48.75"},
	{"2025-07-09", "LA TRATTORIA RESTAURANT", "-310.00"},
	{"2025-07-12", "CITY WATER UTILITY BILL", "-58.90"},
	{"2025-07-15", "SPOTIFY PREMIUM SUBSCRIPTION", "-10.99"},
	{"2025-07-19", "UBER TRIP HELP.UBER.COM", "-31.60"},
	{"2025-07-22", "TARGET STORE 00231 PURCHASE", "-67.45"},
	{"2025-07-26", "VERIZON WIRELESS PHONE BILL", "-89.99"},
}

// Sample returns the built-in demonstration dataset. IDs are stable across
// calls so manual edits keyed by id survive a reload of the sample.
func Sample() []models.Transaction {
	txns := make([]models.Transaction, 0, len(sampleRecords))
	for i, record := range sampleRecords {
		date, err := time.Parse("2006-01-02", record.date)
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(record.amount)
		if err != nil {
			continue
		}
		txns = append(txns, models.Transaction{
			ID:          fmt.Sprintf("sample-%03d", i+1),
			Date:        date.UTC(),
			Description: record.description,
			Amount:      amount,
			Merchant:    merchant.Extract(record.description),
		})
	}
	return txns
}
