package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockLoggerRecordsEntries(t *testing.T) {
	logger := &MockLogger{}

	logger.Info("hello", Field{Key: FieldCount, Value: 3})
	logger.Warn("careful")

	assert.True(t, logger.HasEntry("INFO", "hello"))
	assert.True(t, logger.HasEntry("WARN", "careful"))
	assert.False(t, logger.HasEntry("ERROR", "hello"))
	assert.Len(t, logger.Entries, 2)
}

func TestMockLoggerDerivedLoggersRecordToRoot(t *testing.T) {
	logger := &MockLogger{}

	logger.WithError(errors.New("boom")).Warn("failed")
	logger.WithField(FieldMerchant, "Netflix").Debug("pinned")
	logger.WithFields(Field{Key: FieldFile, Value: "a.csv"}).WithError(errors.New("x")).Error("bad")

	assert.True(t, logger.HasEntry("WARN", "failed"))
	assert.True(t, logger.HasEntry("DEBUG", "pinned"))
	assert.True(t, logger.HasEntry("ERROR", "bad"))
	assert.Len(t, logger.Entries, 3)
}

func TestMockLoggerFormattedHelpers(t *testing.T) {
	logger := &MockLogger{}

	logger.Infof("loaded %d rows", 5)
	assert.True(t, logger.HasEntry("INFO", "loaded 5 rows"))
}
