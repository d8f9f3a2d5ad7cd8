package avalonia

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger shared by all sub-packages.
// By default no log output is produced. Pass nil to restore the silent
// default.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
//
// Log levels used:
//   - [slog.LevelDebug]: internal diagnostics (dirty regions, batch sizes)
//   - [slog.LevelInfo]: lifecycle events (render loop start/stop)
//   - [slog.LevelWarn]: non-fatal issues (frame errors, resource release)
//
// Example:
//
//	avalonia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// Propagate to the GPU context if it accepts a logger.
	gpuMu.RLock()
	g := gpuCtx
	gpuMu.RUnlock()
	if g != nil {
		propagateLogger(g, l)
	}
}

// Logger returns the current shared logger.
// Sub-packages (composition, drawing, surface) call this to share the same
// logger configuration without introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by GPU contexts that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a GPU context if it implements the
// loggerSetter interface. Called from both SetLogger and RegisterGPUContext
// so the context always observes the current logger.
func propagateLogger(g GPUContext, l *slog.Logger) {
	if ls, ok := g.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
