// Package report renders analysis results for people and for files: a
// plain-text summary for the terminal, a JSON document for machines and
// a categorized-transaction CSV export.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"nmorand/spendsight/internal/currencyutils"
	"nmorand/spendsight/internal/dateutils"
	"nmorand/spendsight/internal/engine"
	"nmorand/spendsight/internal/fileutils"
	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Renderer writes analysis snapshots in the supported output formats.
type Renderer struct {
	logger logging.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(logger logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Renderer{logger: logger}
}

// WriteText renders the snapshot as a human-readable report.
func (r *Renderer) WriteText(w io.Writer, snapshot engine.Snapshot) error {
	insights := snapshot.Insights

	fmt.Fprintln(w, "Spending Report")
	fmt.Fprintln(w, "===============")
	fmt.Fprintf(w, "Transactions: %d\n", len(snapshot.Transactions))
	fmt.Fprintf(w, "Health score: %d/100\n", insights.HealthScore)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Insights")
	fmt.Fprintln(w, "--------")
	for _, line := range insights.Lines {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Spending by category")
	fmt.Fprintln(w, "--------------------")
	totals := categoryTotals(snapshot.Transactions)
	for _, category := range models.ExpenseCategories {
		total, ok := totals[category]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-14s %s\n", category, currencyutils.FormatAmount(total))
	}
	fmt.Fprintln(w)

	counts := snapshot.Anomalies.Counts
	fmt.Fprintln(w, "Anomalies")
	fmt.Fprintln(w, "---------")
	fmt.Fprintf(w, "  Spikes: %d  New merchants: %d  Recurring changes: %d\n",
		counts.Spikes, counts.NewMerchants, counts.RecurringChanges)
	for _, alert := range snapshot.Anomalies.Alerts {
		fmt.Fprintf(w, "  [%s] %s %s\n",
			alert.Severity, dateutils.ToISODate(alert.Transaction.Date), alert.Message)
	}
	return nil
}

// WriteJSON renders the snapshot as an indented JSON document.
func (r *Renderer) WriteJSON(w io.Writer, snapshot engine.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// csvRow is the flat CSV shape for one categorized transaction. The date
// column matches what the ingest loader accepts, so exported files can be
// fed back through the analyze command.
type csvRow struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Merchant    string `csv:"merchant"`
	Category    string `csv:"category"`
}

// WriteCSV writes the categorized transactions to w in CSV format.
func (r *Renderer) WriteCSV(w io.Writer, txns []models.Transaction) error {
	rows := make([]csvRow, len(txns))
	for i, tx := range txns {
		rows[i] = csvRow{
			ID:          tx.ID,
			Date:        dateutils.ToISODate(tx.Date),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Merchant:    tx.Merchant,
			Category:    string(tx.Category),
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteCSVFile writes the categorized transactions to a CSV file.
func (r *Renderer) WriteCSVFile(path string, txns []models.Transaction) error {
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := r.WriteCSV(file, txns); err != nil {
		return err
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txns)},
	).Info("Wrote categorized transactions to CSV")
	return nil
}

// categoryTotals sums absolute expense amounts per category.
func categoryTotals(txns []models.Transaction) map[models.Category]decimal.Decimal {
	totals := make(map[models.Category]decimal.Decimal)
	for _, tx := range txns {
		if !tx.IsExpense() {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.AbsAmount())
	}
	return totals
}
