package logging

import (
	"os"

	"go.uber.org/zap/zapcore"
)

// OpenTruncated opens path for writing, truncating any existing content
// (spec §4.2: "file writer ... truncating on open"). It does not create
// parent directories; opening fails if they do not exist.
func OpenTruncated(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

// OpenAppend opens path for writing, appending to any existing content.
// It suits a log that persists across launcher process runs, unlike
// the per-game log; cmd/launcher does not call it.
func OpenAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
}

// fileWriteSyncer adapts an *os.File to zapcore.WriteSyncer; os.File
// already implements Sync, so this only documents the intent at the
// call site in cmd/launcher.
type fileWriteSyncer struct {
	*os.File
}

var _ zapcore.WriteSyncer = (*fileWriteSyncer)(nil)

// AsWriteSyncer wraps f for use with NewZapFileSink.
func AsWriteSyncer(f *os.File) zapcore.WriteSyncer {
	return &fileWriteSyncer{File: f}
}
