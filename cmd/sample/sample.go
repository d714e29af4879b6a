// Package sample exports the built-in demonstration dataset
package sample

import (
	"nmorand/spendsight/cmd/root"
	"nmorand/spendsight/internal/ingest"
	"nmorand/spendsight/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the sample command
var Cmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the built-in sample transactions to a CSV file",
	Long: `Writes the built-in two-month sample dataset to a CSV file so it can
be inspected, edited and fed back through the analyze command.`,
	Run: sampleFunc,
}

func sampleFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	outputFile := root.SharedFlags.Output
	if outputFile == "" {
		outputFile = "sample.csv"
	}

	txns := ingest.Sample()
	if err := report.NewRenderer(log).WriteCSVFile(outputFile, txns); err != nil {
		log.Fatalf("Error writing sample CSV: %v", err)
	}
	log.Infof("Wrote %d sample transactions to %s", len(txns), outputFile)
}
