package evaluation

import (
	"context"
	"fmt"
	"sync"
)

type warningKey struct{}

// WarningRecorder accumulates warnings emitted by an objective during one
// guarded call. The invoker installs a fresh recorder per call and decides
// afterwards whether the first warning reaches the operator channel, so a
// noisy objective cannot spam thousands of lines at low verbosity.
type WarningRecorder struct {
	mu       sync.Mutex
	warnings []string
}

func (r *WarningRecorder) record(msg string) {
	r.mu.Lock()
	r.warnings = append(r.warnings, msg)
	r.mu.Unlock()
}

// Warnings returns a copy of everything recorded so far.
func (r *WarningRecorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// First returns the earliest recorded warning.
func (r *WarningRecorder) First() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.warnings) == 0 {
		return "", false
	}
	return r.warnings[0], true
}

// CaptureWarnings installs a recorder on the context. The recorder is scoped
// to the returned context; callers outside that scope never observe it.
func CaptureWarnings(ctx context.Context) (context.Context, *WarningRecorder) {
	rec := &WarningRecorder{}
	return context.WithValue(ctx, warningKey{}, rec), rec
}

// Warnf records a warning from inside an objective call. Outside a capture
// scope it is a no-op.
func Warnf(ctx context.Context, format string, args ...interface{}) {
	rec, ok := ctx.Value(warningKey{}).(*WarningRecorder)
	if !ok {
		return
	}
	rec.record(fmt.Sprintf(format, args...))
}
