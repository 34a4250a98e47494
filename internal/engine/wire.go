package engine

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/dragontooth/launcher/internal/launcherr"
)

// DecPoint is a pair of signed 32-bit integers (spec §4.9 wire types).
type DecPoint struct {
	X, Y int32
}

func writeFull(w io.Writer, p []byte) error {
	_, err := w.Write(p)
	if err != nil {
		return launcherr.Wrap(launcherr.IOFailed, "engine", err, "write to pipe")
	}
	return nil
}

func readFull(r io.Reader, p []byte) error {
	if _, err := io.ReadFull(r, p); err != nil {
		return launcherr.Wrap(launcherr.ProtocolFailed, "engine", err, "read from pipe")
	}
	return nil
}

func writeU8(w io.Writer, v byte) error { return writeFull(w, []byte{v}) }

func readU8(r io.Reader) (byte, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func writeU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return writeFull(w, b[:])
}

func readU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func writeI32(w io.Writer, v int32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	return writeFull(w, b[:])
}

func readI32(r io.Reader) (int32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b[:])), nil
}

func writeF32(w io.Writer, v float32) error {
	return writeI32(w, int32(math.Float32bits(v)))
}

func readF32(r io.Reader) (float32, error) {
	v, err := readI32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func writeDecPoint(w io.Writer, p DecPoint) error {
	if err := writeI32(w, p.X); err != nil {
		return err
	}
	return writeI32(w, p.Y)
}

func readDecPoint(r io.Reader) (DecPoint, error) {
	x, err := readI32(r)
	if err != nil {
		return DecPoint{}, err
	}
	y, err := readI32(r)
	if err != nil {
		return DecPoint{}, err
	}
	return DecPoint{X: x, Y: y}, nil
}

// writeString writes a u16 length-prefixed UTF-8 string (spec §4.9).
func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return launcherr.New(launcherr.ProtocolFailed, "engine", "string exceeds u16 length limit")
	}
	if err := writeU16(w, uint16(len(s))); err != nil {
		return err
	}
	return writeFull(w, []byte(s))
}

func readString(r io.Reader) (string, error) {
	n, err := readU16(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// writeBytes writes a u16 length-prefixed raw byte blob, used for DELGA
// file contents rather than UTF-8 text (spec §4.9 command 21).
func writeBytes(w io.Writer, b []byte) error {
	if len(b) > math.MaxUint16 {
		return launcherr.New(launcherr.ProtocolFailed, "engine", "blob exceeds u16 length limit")
	}
	if err := writeU16(w, uint16(len(b))); err != nil {
		return err
	}
	return writeFull(w, b)
}

func readBytes(r io.Reader) ([]byte, error) {
	n, err := readU16(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeBool(w io.Writer, v bool) error {
	if v {
		return writeU8(w, 1)
	}
	return writeU8(w, 0)
}

func readBool(r io.Reader) (bool, error) {
	v, err := readU8(r)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func writeStatus(w io.Writer, s Status) error { return writeU8(w, byte(s)) }

func readStatus(r io.Reader) (Status, error) {
	v, err := readU8(r)
	if err != nil {
		return 0, err
	}
	return Status(v), nil
}

// statusError turns a non-success status into a launcherr.
func statusError(component string, s Status) error {
	switch s {
	case StatusSuccess:
		return nil
	case StatusGameExited:
		return launcherr.New(launcherr.InvalidState, component, "game exited")
	default:
		return launcherr.New(launcherr.ProtocolFailed, component, "command failed")
	}
}
