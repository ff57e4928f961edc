package testutils

import "sync"

// TestingT is the minimal surface needed from testing.T.
type TestingT interface {
	Errorf(format string, args ...any)
}

// FieldsToMap converts a slice of alternating key-value pairs to a map,
// reporting malformed entries through t. Logging tests use this to assert on
// structured fields.
func FieldsToMap(t TestingT, fields []any) map[string]any {
	fieldsMap := make(map[string]any)

	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			t.Errorf("Malformed fields slice: missing value for key at index %d", i)
			continue
		}

		key, ok := fields[i].(string)
		if !ok {
			t.Errorf("Malformed fields slice: key at index %d is not a string, got %T", i, fields[i])
			continue
		}

		fieldsMap[key] = fields[i+1]
	}

	return fieldsMap
}

// LogRecord is one captured log call.
type LogRecord struct {
	Level   string
	Message string
	Fields  []any
}

// CaptureLogger implements the logging interface and records every call so
// tests can assert on emitted log lines.
type CaptureLogger struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewCaptureLogger creates an empty capture logger.
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

func (l *CaptureLogger) Debug(msg string, fields ...any) { l.record("DEBUG", msg, fields) }
func (l *CaptureLogger) Info(msg string, fields ...any)  { l.record("INFO", msg, fields) }
func (l *CaptureLogger) Warn(msg string, fields ...any)  { l.record("WARN", msg, fields) }
func (l *CaptureLogger) Error(msg string, fields ...any) { l.record("ERROR", msg, fields) }

func (l *CaptureLogger) record(level, msg string, fields []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, LogRecord{Level: level, Message: msg, Fields: fields})
}

// Records returns a copy of every captured log call.
func (l *CaptureLogger) Records() []LogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogRecord, len(l.records))
	copy(out, l.records)
	return out
}

// MessagesAt returns the messages logged at a level, in order.
func (l *CaptureLogger) MessagesAt(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, r := range l.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}
