package engine

import (
	"context"
	"errors"
	"strings"
	"sync"

	"nmorand/spendsight/internal/ai"
	"nmorand/spendsight/internal/dateutils"
	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"

	"github.com/shopspring/decimal"
)

// ErrBusy is returned when an enrichment run is already in flight.
var ErrBusy = errors.New("enrichment already in progress")

// ErrNoData is returned for operations that need a loaded transaction set.
var ErrNoData = errors.New("no transactions loaded")

// Fallback candidate selection size when no transaction matches the
// priority filter.
const fallbackCandidateLimit = 50

// largeExpenseThreshold marks expenses worth a second opinion from the
// model regardless of how they were classified.
var largeExpenseThreshold = decimal.NewFromInt(300)

// Session owns the mutable application state: the raw transaction set, the
// override maps and the current derived Snapshot. All writes go through a
// single mutex; enrichment additionally holds a busy flag so a second
// Enhance call fails fast instead of queueing behind the first.
type Session struct {
	mu     sync.Mutex
	busy   bool
	engine *Engine
	logger logging.Logger

	raw               []models.Transaction
	manualEdits       map[string]models.Category
	merchantOverrides map[string]models.Category
	snapshot          Snapshot
	aiLines           []string
}

// NewSession creates an empty session around the given engine.
func NewSession(engine *Engine, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if engine == nil {
		engine = New(nil, logger)
	}
	return &Session{
		engine:            engine,
		logger:            logger,
		manualEdits:       make(map[string]models.Category),
		merchantOverrides: make(map[string]models.Category),
	}
}

// Load replaces the raw transaction set wholesale, discarding all edits,
// overrides and AI narrative, then recomputes.
func (s *Session) Load(raw []models.Transaction) error {
	if len(raw) == 0 {
		return ErrNoData
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = raw
	s.manualEdits = make(map[string]models.Category)
	s.merchantOverrides = make(map[string]models.Category)
	s.aiLines = nil
	s.recomputeLocked()
	return nil
}

// SetCategory records a manual category edit for one transaction and a
// merchant override for its merchant, drops any AI narrative, and
// recomputes everything downstream.
func (s *Session) SetCategory(id string, category models.Category) error {
	if !models.IsValidCategory(string(category)) {
		return errors.New("invalid category: " + string(category))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.findLocked(id)
	if !ok {
		return errors.New("unknown transaction id: " + id)
	}

	s.manualEdits[id] = category
	s.merchantOverrides[tx.Merchant] = category
	s.aiLines = nil
	s.recomputeLocked()
	return nil
}

// SetMerchantOverrides replaces the merchant override map wholesale,
// typically with overrides loaded from the persisted store, and
// recomputes. Manual per-transaction edits are kept.
func (s *Session) SetMerchantOverrides(overrides map[string]models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.merchantOverrides = make(map[string]models.Category, len(overrides))
	for merchantName, category := range overrides {
		s.merchantOverrides[merchantName] = category
	}
	s.aiLines = nil
	s.recomputeLocked()
}

// MerchantOverrides returns a copy of the current merchant override map.
func (s *Session) MerchantOverrides() map[string]models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	overrides := make(map[string]models.Category, len(s.merchantOverrides))
	for merchantName, category := range s.merchantOverrides {
		overrides[merchantName] = category
	}
	return overrides
}

// ClearEdits drops all manual edits, merchant overrides and AI narrative,
// then recomputes.
func (s *Session) ClearEdits() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.manualEdits = make(map[string]models.Category)
	s.merchantOverrides = make(map[string]models.Category)
	s.aiLines = nil
	s.recomputeLocked()
}

// Current returns the current snapshot. When an AI narrative is active it
// replaces the generated lines wholesale, never merged line by line.
func (s *Session) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot
	if len(s.aiLines) > 0 {
		lines := make([]string, len(s.aiLines))
		copy(lines, s.aiLines)
		snapshot.Insights.Lines = lines
	}
	return snapshot
}

// Enhance runs the two-step model enrichment: categorize candidates, apply
// the accepted suggestions, recompute, then request a narrative over the
// fresh state. A failure in either step leaves all previously committed
// state intact. Returns how many category suggestions were applied.
func (s *Session) Enhance(ctx context.Context, client ai.Client) (int, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return 0, ErrBusy
	}
	if len(s.raw) == 0 {
		s.mu.Unlock()
		return 0, ErrNoData
	}
	s.busy = true
	candidates := s.candidatesLocked()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	results, err := client.CategorizeBatch(ctx, candidates)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	applied := s.applyResultsLocked(results)
	s.aiLines = nil
	if applied > 0 {
		s.recomputeLocked()
	}
	summary := s.summarySnapshotLocked()
	s.mu.Unlock()

	lines, err := client.NarrativeLines(ctx, summary)
	if err != nil {
		return applied, err
	}

	s.mu.Lock()
	if len(lines) > 0 {
		s.aiLines = lines
	}
	s.mu.Unlock()

	s.logger.WithFields(
		logging.Field{Key: "applied", Value: applied},
		logging.Field{Key: logging.FieldCount, Value: len(lines)},
	).Info("Model enrichment complete")
	return applied, nil
}

func (s *Session) recomputeLocked() {
	s.snapshot = s.engine.Recompute(s.raw, s.manualEdits, s.merchantOverrides)
}

func (s *Session) findLocked(id string) (models.Transaction, bool) {
	for _, tx := range s.snapshot.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

// candidatesLocked selects the transactions worth a model opinion: expenses
// still categorized Other, one-off merchants, and unusually large amounts.
// When nothing matches, the first fallbackCandidateLimit expenses are sent
// instead so the model always has something to work with.
func (s *Session) candidatesLocked() []ai.Candidate {
	merchantCount := make(map[string]int)
	for _, tx := range s.snapshot.Transactions {
		merchantCount[strings.ToLower(tx.Merchant)]++
	}

	var candidates []ai.Candidate
	for _, tx := range s.snapshot.Transactions {
		if !tx.IsExpense() || tx.Category == models.CategoryIncome {
			continue
		}
		interesting := tx.Category == models.CategoryOther ||
			merchantCount[strings.ToLower(tx.Merchant)] == 1 ||
			tx.AbsAmount().Cmp(largeExpenseThreshold) >= 0
		if interesting {
			candidates = append(candidates, s.toCandidate(tx))
		}
	}
	if len(candidates) > 0 {
		return candidates
	}

	for _, tx := range s.snapshot.Transactions {
		if !tx.IsExpense() || tx.Category == models.CategoryIncome {
			continue
		}
		candidates = append(candidates, s.toCandidate(tx))
		if len(candidates) == fallbackCandidateLimit {
			break
		}
	}
	return candidates
}

func (s *Session) toCandidate(tx models.Transaction) ai.Candidate {
	return ai.Candidate{
		ID:              tx.ID,
		Date:            dateutils.ToISODate(tx.Date),
		Description:     tx.Description,
		Amount:          tx.Amount,
		Merchant:        tx.Merchant,
		CurrentCategory: tx.Category,
	}
}

// applyResultsLocked rewrites the override maps from validated model
// suggestions. Suggestions matching the current category are skipped.
func (s *Session) applyResultsLocked(results []ai.CategoryResult) int {
	applied := 0
	for _, result := range results {
		tx, ok := s.findLocked(result.ID)
		if !ok || tx.Category == result.Category {
			continue
		}
		s.manualEdits[tx.ID] = result.Category
		s.merchantOverrides[tx.Merchant] = result.Category
		applied++
	}
	return applied
}

func (s *Session) summarySnapshotLocked() ai.SummarySnapshot {
	totalIncome := decimal.Zero
	totalSpend := decimal.Zero
	for _, tx := range s.snapshot.Transactions {
		if tx.IsIncome() {
			totalIncome = totalIncome.Add(tx.Amount)
		} else if tx.IsExpense() {
			totalSpend = totalSpend.Add(tx.AbsAmount())
		}
	}

	insights := s.snapshot.Insights
	return ai.SummarySnapshot{
		Transactions:   len(s.snapshot.Transactions),
		TotalIncome:    totalIncome,
		TotalSpend:     totalSpend,
		TopCategory:    insights.TopCategory,
		MonthOverMonth: insights.MonthOverMonth,
		Subscriptions:  insights.Subscriptions,
		BiggestSpike:   insights.SpikeSummary,
		HealthScore:    insights.HealthScore,
		AnomalyCounts:  s.snapshot.Anomalies.Counts,
	}
}
