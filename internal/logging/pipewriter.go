package logging

import (
	"encoding/binary"
	"io"

	"github.com/dragontooth/launcher/internal/launcherr"
)

// PipeWriterSink frames each record for transport to a parent process
// (spec §4.2): one byte type tag, u16 source length + bytes, u16
// message length + bytes, all little-endian. This is the sink the
// engine-instance child process uses to carry its own log messages back
// to the launcher over the same kind of pipe the control protocol uses.
type PipeWriterSink struct {
	w io.Writer
}

// NewPipeWriterSink wraps w (typically a pipe's write end) as a Sink.
func NewPipeWriterSink(w io.Writer) *PipeWriterSink {
	return &PipeWriterSink{w: w}
}

const (
	pipeLogInfo byte = iota
	pipeLogWarn
	pipeLogError
	pipeLogException
)

func (p *PipeWriterSink) frame(tag byte, source, message string) error {
	if len(source) > 0xFFFF || len(message) > 0xFFFF {
		return launcherr.New(launcherr.ProtocolFailed, "logging", "source or message exceeds u16 length")
	}

	buf := make([]byte, 0, 1+2+len(source)+2+len(message))
	buf = append(buf, tag)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(source)))
	buf = append(buf, source...)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(message)))
	buf = append(buf, message...)

	if _, err := p.w.Write(buf); err != nil {
		return launcherr.Wrap(launcherr.IOFailed, "logging", err, "write log frame")
	}
	return nil
}

func (p *PipeWriterSink) Info(source, message string) { _ = p.frame(pipeLogInfo, source, message) }
func (p *PipeWriterSink) Warn(source, message string) { _ = p.frame(pipeLogWarn, source, message) }
func (p *PipeWriterSink) Error(source, message string) {
	_ = p.frame(pipeLogError, source, message)
}
func (p *PipeWriterSink) Exception(source string, err error) {
	_ = p.frame(pipeLogException, source, err.Error())
}

// ReadPipeLogFrame decodes a single record written by PipeWriterSink,
// the receiving half used by a parent process that wants to re-inject a
// child's log records into its own chain logger.
func ReadPipeLogFrame(r io.Reader) (tag byte, source, message string, err error) {
	var header [1]byte
	if _, err = io.ReadFull(r, header[:]); err != nil {
		return 0, "", "", launcherr.Wrap(launcherr.ProtocolFailed, "logging", err, "read log frame tag")
	}
	tag = header[0]

	source, err = readU16String(r)
	if err != nil {
		return 0, "", "", err
	}
	message, err = readU16String(r)
	if err != nil {
		return 0, "", "", err
	}
	return tag, source, message, nil
}

func readU16String(r io.Reader) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", launcherr.Wrap(launcherr.ProtocolFailed, "logging", err, "read string length")
	}
	n := binary.LittleEndian.Uint16(lenBuf[:])
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", launcherr.Wrap(launcherr.ProtocolFailed, "logging", err, "read string bytes")
		}
	}
	return string(buf), nil
}
