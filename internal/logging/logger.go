// Package logging builds the zap loggers used by the CLI, the TUI and the
// HTTP server.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps debug/info/warn/error to a zap level. Unknown values
// fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger writing to stderr. Production uses JSON; otherwise a
// colourised console encoder.
func New(level string, production bool) *zap.Logger {
	return NewTo(level, production, os.Stderr)
}

// NewTo builds a logger writing to w. Command output owns stdout, so callers
// pass stderr or a file here.
func NewTo(level string, production bool, w io.Writer) *zap.Logger {
	var encoder zapcore.Encoder
	if production {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	)
}

// Sugared adapts a zap logger to the printf-style interface the engine uses.
type Sugared struct {
	s *zap.SugaredLogger
}

// NewSugared wraps l; a nil logger yields a no-op. Entries report the
// caller of the adapter method, not the adapter itself.
func NewSugared(l *zap.Logger) *Sugared {
	if l == nil {
		l = zap.NewNop()
	}
	return &Sugared{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *Sugared) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l *Sugared) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l *Sugared) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l *Sugared) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

// Sync flushes buffered entries.
func (l *Sugared) Sync() error { return l.s.Sync() }
