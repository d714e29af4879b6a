// Package analyze handles the full categorize-detect-report run
package analyze

import (
	"nmorand/spendsight/cmd/common"
	"nmorand/spendsight/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Categorize a transaction CSV and report anomalies and insights",
	Long: `Reads a transaction CSV file, assigns a category to every transaction,
detects spending anomalies and writes a spending report. Without --input
the built-in sample dataset is analyzed.`,
	Run: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.CSVOutput, "csv", "c", "", "Also export categorized transactions to this CSV file")
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	session, overrides, err := common.BuildSession(root.AppConfig, log)
	if err != nil {
		log.Fatalf("Error preparing analysis: %v", err)
	}

	txns, err := common.LoadTransactions(root.SharedFlags.Input, log)
	if err != nil {
		log.Fatalf("Error loading transactions: %v", err)
	}

	if err := session.Load(txns); err != nil {
		log.Fatalf("Error analyzing transactions: %v", err)
	}
	session.SetMerchantOverrides(overrides)

	snapshot := session.Current()
	if err := common.RenderSnapshot(snapshot, root.SharedFlags.Output, root.SharedFlags.Format, log); err != nil {
		log.Fatalf("Error writing report: %v", err)
	}
	if err := common.ExportCSV(snapshot, root.CSVOutput, log); err != nil {
		log.Fatalf("Error exporting CSV: %v", err)
	}
}
