package categorizer

import (
	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"
)

// Pipeline orchestrates classification across a full transaction set,
// honoring manual edits and merchant overrides. Each invocation is fully
// deterministic and leaves its inputs untouched.
type Pipeline struct {
	classifier *Classifier
	logger     logging.Logger
}

// NewPipeline creates a Pipeline around the given classifier.
func NewPipeline(classifier *Classifier, logger logging.Logger) *Pipeline {
	if classifier == nil {
		classifier = NewClassifier(nil, logger)
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{classifier: classifier, logger: logger}
}

// Apply walks the set in chronological order and assigns a category to
// every transaction. Manual edits take precedence over everything,
// including the classifier's income rule. The merchant history accumulator
// starts empty on every call, so earlier transactions within the same pass
// can influence later ones from the same merchant, but no state leaks
// across recomputations.
func (p *Pipeline) Apply(
	txns []models.Transaction,
	manualEdits map[string]models.Category,
	merchantOverrides map[string]models.Category,
) []models.Transaction {
	ordered := models.SortByDate(txns)
	stats := NewMerchantStats()
	ctx := Context{MerchantOverrides: merchantOverrides, Stats: stats}

	edited := 0
	for i := range ordered {
		category, isManual := manualEdits[ordered[i].ID]
		if !isManual {
			category = p.classifier.Classify(ordered[i], ctx)
		} else {
			edited++
		}
		ordered[i].Category = category
		stats.Increment(ordered[i].Merchant, category)
	}

	p.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(ordered)},
		logging.Field{Key: "manual_edits", Value: edited},
	).Debug("Categorization pass complete")

	return ordered
}
