package models

// AnomalyType identifies which detection pass produced a flag.
type AnomalyType string

const (
	AnomalySpike           AnomalyType = "spike"
	AnomalyNewMerchant     AnomalyType = "new_merchant"
	AnomalyRecurringChange AnomalyType = "recurring_change"
)

// Severity ranks how loudly an anomaly should surface.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Anomaly is a flagged deviation attached to a transaction. Ratio is only
// populated for spikes, where it drives ranking of the biggest spike.
type Anomaly struct {
	Type     AnomalyType `json:"type"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Ratio    float64     `json:"ratio,omitempty"`
}

// Alert pairs an anomaly with the transaction it was detected on.
type Alert struct {
	Anomaly
	Transaction Transaction `json:"transaction"`
}

// AnomalyCounts tallies alerts by detection pass.
type AnomalyCounts struct {
	Total            int `json:"total"`
	Spikes           int `json:"spikes"`
	RecurringChanges int `json:"recurringChanges"`
	NewMerchants     int `json:"newMerchants"`
}

// AnomalyReport is the full output of a detection run. ByTransaction keeps
// flags in detection order per transaction; Alerts holds every flag sorted
// by transaction date descending.
type AnomalyReport struct {
	ByTransaction map[string][]Anomaly `json:"byTransaction"`
	Alerts        []Alert              `json:"alerts"`
	Counts        AnomalyCounts        `json:"counts"`
}

// CountAlerts recomputes the per-type tallies from an alert list.
func CountAlerts(alerts []Alert) AnomalyCounts {
	counts := AnomalyCounts{Total: len(alerts)}
	for _, alert := range alerts {
		switch alert.Type {
		case AnomalySpike:
			counts.Spikes++
		case AnomalyRecurringChange:
			counts.RecurringChanges++
		case AnomalyNewMerchant:
			counts.NewMerchants++
		}
	}
	return counts
}
