package logging

// LogEntry represents a structured log record emitted by the engine.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Evaluation-specific fields
	BatchID string // Correlates entries from one dispatch batch
	Latency int64  // Operation duration in milliseconds

	// General structured data
	Fields map[string]interface{}
}
