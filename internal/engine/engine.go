// Package engine ties the categorization pipeline, anomaly detection and
// insight generation into one recompute step, and owns the mutable session
// state around it.
package engine

import (
	"nmorand/spendsight/internal/anomaly"
	"nmorand/spendsight/internal/categorizer"
	"nmorand/spendsight/internal/insight"
	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"
)

// Snapshot is the immutable result of one full recompute. A new Snapshot
// replaces the previous one atomically; nothing inside it is mutated after
// creation.
type Snapshot struct {
	Transactions []models.Transaction
	Anomalies    models.AnomalyReport
	Insights     models.Insights
}

// Engine runs the classification, detection and insight stages as a single
// synchronous computation with no hidden state.
type Engine struct {
	pipeline *categorizer.Pipeline
	logger   logging.Logger
}

// New creates an Engine around the given categorization pipeline.
func New(pipeline *categorizer.Pipeline, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if pipeline == nil {
		pipeline = categorizer.NewPipeline(nil, logger)
	}
	return &Engine{pipeline: pipeline, logger: logger}
}

// Recompute transforms the raw transaction set plus the override maps into
// a fresh Snapshot. It is pure: the same inputs always produce the same
// output, and none of the inputs are mutated.
func (e *Engine) Recompute(
	raw []models.Transaction,
	manualEdits map[string]models.Category,
	merchantOverrides map[string]models.Category,
) Snapshot {
	txns := e.pipeline.Apply(raw, manualEdits, merchantOverrides)
	report := anomaly.Detect(txns)
	insights := insight.Generate(txns, report)

	e.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(txns)},
		logging.Field{Key: "alerts", Value: report.Counts.Total},
		logging.Field{Key: "health_score", Value: insights.HealthScore},
	).Debug("Recompute complete")

	return Snapshot{
		Transactions: txns,
		Anomalies:    report,
		Insights:     insights,
	}
}
