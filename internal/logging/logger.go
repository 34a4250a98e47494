// Package logging implements the launcher's logger chain and history
// (spec §4.2): a polymorphic sink fan-out over console, file, and the
// observable history ring, backed by go.uber.org/zap the way the
// teacher's cmd/supervisor/main.go builds its process-wide logger.
package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink is the minimal capability set a log destination must support
// (spec §9): info/warn/error/exception, each carrying a source tag
// (typically a component name) and a message.
type Sink interface {
	Info(source, message string)
	Warn(source, message string)
	Error(source, message string)
	Exception(source string, err error)
}

// Logger is the chain logger: it fans a call out to every registered
// sink in order, exactly as spec §4.2 describes. Additional sinks can
// be appended after construction (e.g. a pipe-writer sink added only
// once the engine instance's child process is attached).
type Logger struct {
	sinks []Sink
}

// NewChain builds a chain logger over the given sinks, in fan-out order.
func NewChain(sinks ...Sink) *Logger {
	return &Logger{sinks: sinks}
}

// AddSink appends a sink to the chain.
func (l *Logger) AddSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

func (l *Logger) Info(source, message string) {
	for _, s := range l.sinks {
		s.Info(source, message)
	}
}

func (l *Logger) Warn(source, message string) {
	for _, s := range l.sinks {
		s.Warn(source, message)
	}
}

func (l *Logger) Error(source, message string) {
	for _, s := range l.sinks {
		s.Error(source, message)
	}
}

func (l *Logger) Exception(source string, err error) {
	for _, s := range l.sinks {
		s.Exception(source, err)
	}
}

// ZapSink adapts a *zap.Logger into the Sink capability set, the same
// console/production encoder setup the teacher builds in main():
// zap.NewProductionConfig with an ISO8601 time encoder.
type ZapSink struct {
	z *zap.Logger
}

// NewZapConsoleSink builds a colorized console sink backed by zap,
// mirroring the teacher's logger construction but with a console
// (rather than JSON) encoder, since this sink is meant for a human
// operator's terminal.
func NewZapConsoleSink() (*ZapSink, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapSink{z: z}, nil
}

// NewZapFileSink builds a JSON sink writing to an already-open,
// writer (cmd/launcher passes a file from OpenTruncated), matching
// the teacher's ISO8601 production encoder.
func NewZapFileSink(ws zapcore.WriteSyncer) *ZapSink {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, zapcore.DebugLevel)
	return &ZapSink{z: zap.New(core)}
}

func (s *ZapSink) Info(source, message string) {
	s.z.Info(message, zap.String("source", source))
}

func (s *ZapSink) Warn(source, message string) {
	s.z.Warn(message, zap.String("source", source))
}

func (s *ZapSink) Error(source, message string) {
	s.z.Error(message, zap.String("source", source))
}

func (s *ZapSink) Exception(source string, err error) {
	s.z.Error("exception", zap.String("source", source), zap.Error(err))
}

// Sync flushes the underlying zap core.
func (s *ZapSink) Sync() error { return s.z.Sync() }

// HistorySink adapts a History into a Sink, so everything sent through
// the chain logger is also appended to the observable ring (spec §4.2).
type HistorySink struct {
	h   *History
	now func() time.Time
}

// NewHistorySink wraps h as a Sink. now defaults to time.Now; tests may
// override it for deterministic timestamps.
func NewHistorySink(h *History) *HistorySink {
	return &HistorySink{h: h, now: time.Now}
}

func (s *HistorySink) add(t EntryType, source, message string) {
	s.h.AddEntry(Entry{
		TimestampUnixNano: s.now().UnixNano(),
		Type:              t,
		Source:            source,
		Message:           message,
	})
}

func (s *HistorySink) Info(source, message string)  { s.add(EntryInfo, source, message) }
func (s *HistorySink) Warn(source, message string)  { s.add(EntryWarn, source, message) }
func (s *HistorySink) Error(source, message string) { s.add(EntryError, source, message) }
func (s *HistorySink) Exception(source string, err error) {
	s.add(EntryError, source, err.Error())
}
