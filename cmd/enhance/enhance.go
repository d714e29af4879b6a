// Package enhance runs the analysis with Gemini model enrichment
package enhance

import (
	"context"
	"time"

	"nmorand/spendsight/cmd/common"
	"nmorand/spendsight/cmd/root"
	"nmorand/spendsight/internal/ai"
	"nmorand/spendsight/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the enhance command
var Cmd = &cobra.Command{
	Use:   "enhance",
	Short: "Analyze transactions with Gemini model enrichment",
	Long: `Runs the same analysis as the analyze command, then asks the Gemini
model to re-categorize uncertain transactions and to write the summary
narrative. Accepted category suggestions are saved as merchant overrides
for future runs. Requires GEMINI_API_KEY.`,
	Run: enhanceFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.CSVOutput, "csv", "c", "", "Also export categorized transactions to this CSV file")
}

func enhanceFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	cfg := root.AppConfig

	session, overrides, err := common.BuildSession(cfg, log)
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

	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ai.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, log)
	if err != nil {
		log.Fatalf("Error creating Gemini client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Gemini client")
		}
	}()

	applied, err := session.Enhance(ctx, client)
	if err != nil {
		log.WithError(err).Warn("Model enrichment failed, reporting unenriched results")
	} else if applied > 0 {
		ruleStore := store.NewRuleStore(cfg.Data.RulesFile, cfg.Data.OverridesFile, log)
		if err := ruleStore.SaveOverrides(session.MerchantOverrides()); err != nil {
			log.WithError(err).Warn("Failed to save merchant overrides")
		}
	}

	snapshot := session.Current()
	if err := common.RenderSnapshot(snapshot, root.SharedFlags.Output, root.SharedFlags.Format, log); err != nil {
		log.Fatalf("Error writing report: %v", err)
	}
	if err := common.ExportCSV(snapshot, root.CSVOutput, log); err != nil {
		log.Fatalf("Error exporting CSV: %v", err)
	}
}
