// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"os"

	"nmorand/spendsight/internal/categorizer"
	"nmorand/spendsight/internal/config"
	"nmorand/spendsight/internal/engine"
	"nmorand/spendsight/internal/ingest"
	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"
	"nmorand/spendsight/internal/report"
	"nmorand/spendsight/internal/store"
)

// BuildSession wires the categorization pipeline from the persisted rule
// file and returns a fresh session around it, plus the persisted
// merchant overrides to apply once transactions are loaded.
func BuildSession(cfg *config.Config, log logging.Logger) (*engine.Session, map[string]models.Category, error) {
	ruleStore := store.NewRuleStore(cfg.Data.RulesFile, cfg.Data.OverridesFile, log)

	rules, err := ruleStore.LoadRules()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load category rules: %w", err)
	}
	overrides, err := ruleStore.LoadOverrides()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load merchant overrides: %w", err)
	}

	classifier := categorizer.NewClassifier(rules, log)
	pipeline := categorizer.NewPipeline(classifier, log)
	session := engine.NewSession(engine.New(pipeline, log), log)
	return session, overrides, nil
}

// LoadTransactions reads the input CSV, or falls back to the built-in
// sample dataset when no input file was given.
func LoadTransactions(inputFile string, log logging.Logger) ([]models.Transaction, error) {
	if inputFile == "" {
		log.Info("No input file given, using the built-in sample dataset")
		return ingest.Sample(), nil
	}
	return ingest.NewLoader(log).LoadFile(inputFile)
}

// RenderSnapshot writes the snapshot to the output path (or stdout) in
// the requested format.
func RenderSnapshot(snapshot engine.Snapshot, outputFile, format string, log logging.Logger) error {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				log.WithError(err).Warn("Failed to close file")
			}
		}()
		w = file
	}

	renderer := report.NewRenderer(log)
	switch format {
	case "", "text":
		return renderer.WriteText(w, snapshot)
	case "json":
		return renderer.WriteJSON(w, snapshot)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// ExportCSV writes the categorized transactions to csvFile when set.
func ExportCSV(snapshot engine.Snapshot, csvFile string, log logging.Logger) error {
	if csvFile == "" {
		return nil
	}
	return report.NewRenderer(log).WriteCSVFile(csvFile, snapshot.Transactions)
}
