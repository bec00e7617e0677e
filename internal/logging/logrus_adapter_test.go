package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"debug text", "debug", "text"},
		{"info json", "info", "json"},
		{"invalid level falls back", "nonsense", "text"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tc.level, tc.format)
			require.NotNil(t, logger)

			// Chained loggers must be independent instances.
			child := logger.WithField("content_type", "spreadsheet")
			assert.NotSame(t, logger, child)
		})
	}
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	assert.NotNil(t, NewLogrusAdapterFromLogger(nil))
	assert.NotNil(t, NewLogrusAdapterFromLogger(logrus.New()))
}

func TestMockLoggerCapturesFields(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("statement ingested",
		Field{Key: FieldLineCount, Value: 3},
		Field{Key: FieldContentType, Value: "spreadsheet"},
	)
	mock.Warn("transaction dropped", Field{Key: FieldReason, Value: "bad date"})

	require.Len(t, mock.Entries, 2)
	assert.True(t, mock.HasEntry("INFO", "statement ingested"))
	assert.True(t, mock.HasEntry("WARN", "transaction dropped"))
	assert.Equal(t, FieldLineCount, mock.Entries[0].Fields[0].Key)
}

func TestMockLoggerDerivedLoggersShareEntries(t *testing.T) {
	mock := &MockLogger{}

	mock.WithField(FieldReason, "missing amount").Warn("dropping extracted element")
	mock.WithFields(Field{Key: FieldCount, Value: 2}).WithError(assert.AnError).Error("failed")

	require.Len(t, mock.Entries, 2)
	assert.True(t, mock.HasEntry("WARN", "dropping extracted element"))
	assert.Equal(t, assert.AnError, mock.Entries[1].Error)
}
