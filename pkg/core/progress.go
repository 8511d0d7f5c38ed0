package core

// ProgressReporter receives completion updates from the parallel
// dispatchers. Purely observational; it never affects returned data.
type ProgressReporter interface {
	Report(stage string, processed, total int)
}
