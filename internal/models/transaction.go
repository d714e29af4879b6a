package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one signed monetary event. The identity fields (ID, Date,
// Description, Amount, Merchant) are fixed at ingestion; Category is
// reassigned on every pipeline pass.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Merchant    string          `json:"merchant"`
	Category    Category        `json:"category"`
}

// IsIncome reports whether the transaction carries money in.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the transaction carries money out.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// AbsAmount returns the unsigned amount.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// MonthKey returns the calendar-month bucket of the transaction date
// in YYYY-MM form.
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

// SortByDate orders transactions by date ascending, keeping the original
// relative order for same-date ties. The input slice is not modified.
func SortByDate(txns []Transaction) []Transaction {
	ordered := make([]Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return ordered
}
