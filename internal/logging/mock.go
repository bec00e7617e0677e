package logging

// MockLogger captures log entries for verification in tests. Loggers derived
// via WithError/WithField/WithFields record into the root logger's Entries, so
// tests can assert on the instance they originally passed in.
type MockLogger struct {
	Entries       []LogEntry
	root          *MockLogger
	pendingError  error
	pendingFields []Field
}

// LogEntry is a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

func (m *MockLogger) rootLogger() *MockLogger {
	if m.root != nil {
		return m.root
	}
	return m
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	allFields := append(append([]Field{}, m.pendingFields...), fields...)
	r := m.rootLogger()
	r.Entries = append(r.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   m.pendingError,
	})
}

// Debug records a debug-level entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info records an info-level entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn records a warning-level entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error records an error-level entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// WithError returns a logger that attaches err to subsequent entries.
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{
		root:          m.rootLogger(),
		pendingError:  err,
		pendingFields: m.pendingFields,
	}
}

// WithField returns a logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	allFields := append(append([]Field{}, m.pendingFields...), fields...)
	return &MockLogger{
		root:          m.rootLogger(),
		pendingError:  m.pendingError,
		pendingFields: allFields,
	}
}

// HasEntry reports whether an entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.rootLogger().Entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}
