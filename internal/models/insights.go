package models

import "github.com/shopspring/decimal"

// TopCategory is the category with the largest summed expense.
type TopCategory struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthOverMonth compares total expenses between the two most recent
// calendar months present in the data.
type MonthOverMonth struct {
	ChangePct float64         `json:"changePct"`
	Latest    decimal.Decimal `json:"latest"`
	Previous  decimal.Decimal `json:"previous"`
	Label     string          `json:"label"`
}

// Subscription is a merchant showing roughly monthly expense periodicity.
type Subscription struct {
	Merchant  string          `json:"merchant"`
	AvgAmount decimal.Decimal `json:"avgAmount"`
}

// Insights is the derived summary of a categorized transaction set plus its
// anomaly report. Lines always holds at most four narrative strings; an AI
// narrative may replace them wholesale but is never merged field by field.
type Insights struct {
	TopCategory    TopCategory    `json:"topCategory"`
	MonthOverMonth MonthOverMonth `json:"monthOverMonth"`
	Subscriptions  []Subscription `json:"subscriptions"`
	HealthScore    int            `json:"healthScore"`
	SpikeSummary   string         `json:"spikeSummary"`
	Lines          []string       `json:"lines"`
}
