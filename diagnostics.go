package autoescape

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink receives a record for every value a filter rejects. Implementations
// must be safe for concurrent use, must not block and cannot fail the
// caller.
type Sink interface {
	Reject(d Directive, value string)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(d Directive, value string)

func (f SinkFunc) Reject(d Directive, value string) { f(d, value) }

// NopSink discards all records.
type NopSink struct{}

func (NopSink) Reject(Directive, string) {}

type zapSink struct {
	// nil means the global logger at the time of each record.
	logger *zap.Logger
}

// NewZapSink returns a Sink that writes one warning per rejected value to
// logger. A nil logger follows zap's global logger, so records appear once
// the application calls zap.ReplaceGlobals.
func NewZapSink(logger *zap.Logger) Sink {
	if logger != nil {
		logger = logger.Named("autoescape")
	}
	return zapSink{logger: logger}
}

func (s zapSink) Reject(d Directive, value string) {
	l := s.logger
	if l == nil {
		l = zap.L().Named("autoescape")
	}
	l.Warn(d.String()+" received bad value",
		zap.String("directive", d.String()),
		zap.String("value", value),
	)
}

// newWarnLogger returns a logger that writes JSON records at warn level and
// above to w.
func newWarnLogger(w io.Writer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), zap.WarnLevel)
	return zap.New(core)
}
