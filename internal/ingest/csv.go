// Package ingest turns raw CSV rows into normalized transactions. Rows
// that fail validation are dropped individually; an input yielding zero
// valid transactions is a hard error so the pipeline never runs on
// nothing.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nmorand/spendsight/internal/currencyutils"
	"nmorand/spendsight/internal/dateutils"
	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/merchant"
	"nmorand/spendsight/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// ErrNoValidRows is returned when parsing succeeds but every row was
// dropped by validation.
var ErrNoValidRows = errors.New("no valid transactions found after parsing")

// Row is the raw CSV shape. The date, description and amount columns are
// required; everything else in the file is ignored.
type Row struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
}

// Loader reads and normalizes transaction CSV files.
type Loader struct {
	logger logging.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Loader{logger: logger}
}

// LoadFile reads a CSV file from disk and returns the normalized
// transaction set.
func (l *Loader) LoadFile(path string) ([]models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	txns, err := l.Parse(file)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txns)},
	).Info("Loaded transactions from CSV")
	return txns, nil
}

// Parse reads CSV data from r and normalizes every row. Invalid rows are
// dropped with a debug log; zero surviving rows is an error.
func (l *Loader) Parse(r io.Reader) ([]models.Transaction, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}

	txns := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := normalizeRow(row)
		if err != nil {
			l.logger.WithError(err).WithField(logging.FieldRow, i+1).Debug("Dropping invalid row")
			continue
		}
		txns = append(txns, tx)
	}

	if len(txns) == 0 {
		return nil, ErrNoValidRows
	}
	return txns, nil
}

// normalizeRow validates one raw row and builds a transaction from it,
// deriving the merchant label and assigning a fresh id.
func normalizeRow(row Row) (models.Transaction, error) {
	date, err := dateutils.ParseDate(row.Date)
	if err != nil {
		return models.Transaction{}, err
	}

	description := strings.TrimSpace(row.Description)
	if description == "" {
		return models.Transaction{}, errors.New("empty description")
	}

	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      amount,
		Merchant:    merchant.Extract(description),
	}, nil
}

