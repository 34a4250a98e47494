package engine

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dragontooth/launcher/internal/launcherr"
	"github.com/dragontooth/launcher/internal/module"
)

// deadlineReader is satisfied by pipe endpoints (e.g. *os.File) that
// support a read deadline, letting peekExited poll the pipe without
// blocking the caller.
type deadlineReader interface {
	SetReadDeadline(time.Time) error
}

// session serializes command/reply exchanges over a pipe-like
// io.Writer/io.Reader pair. It holds no knowledge of process
// lifecycle, so tests can drive it with io.Pipe without spawning a
// real child (spec §4.9).
type session struct {
	mu sync.Mutex
	w  io.Writer
	r  io.Reader
}

func newSession(w io.Writer, r io.Reader) *session {
	return &session{w: w, r: r}
}

// call sends tag followed by the bytes write produces, then reads and
// validates the status byte, then runs read (nil-safe) to decode any
// reply payload. Both halves run under the session lock: only one
// command may be in flight on a pipe at a time.
func (s *session) call(tag Tag, write func(io.Writer) error, read func(io.Reader) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeU8(s.w, byte(tag)); err != nil {
		return err
	}
	if write != nil {
		if err := write(s.w); err != nil {
			return err
		}
	}

	status, err := readStatus(s.r)
	if err != nil {
		return err
	}
	if err := statusError("engine", status); err != nil {
		return err
	}
	if read != nil {
		return read(s.r)
	}
	return nil
}

func (s *session) simple(tag Tag, write func(io.Writer) error) error {
	return s.call(tag, write, nil)
}

// peekExited briefly checks for an unsolicited ercGameExited status
// arriving on the pipe without a command having been sent — the
// engine's way of reporting a game that quit on its own, distinct from
// a reply to stop-game (spec §4.10, §5). It only looks when no command
// is currently in flight and the underlying reader supports a read
// deadline; otherwise it reports nothing pending rather than blocking.
func (s *session) peekExited() (exited bool, drift []ParamValue, err error) {
	if !s.mu.TryLock() {
		return false, nil, nil
	}
	defer s.mu.Unlock()

	dr, ok := s.r.(deadlineReader)
	if !ok {
		return false, nil, nil
	}
	if err := dr.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return false, nil, nil
	}
	defer dr.SetReadDeadline(time.Time{})

	b, err := readU8(s.r)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return false, nil, nil
		}
		return false, nil, err
	}
	if Status(b) != StatusGameExited {
		return false, nil, launcherr.Newf(launcherr.ProtocolFailed, "engine", "unexpected unsolicited status byte %d", b)
	}

	drift, err = readParamValues(s.r)
	return true, drift, err
}

func readParamValues(r io.Reader) ([]ParamValue, error) {
	var out []ParamValue
	for {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		if name == "" {
			return out, nil
		}
		version, err := readString(r)
		if err != nil {
			return nil, err
		}
		param, err := readString(r)
		if err != nil {
			return nil, err
		}
		value, err := readString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ParamValue{ModuleName: name, ModuleVersion: version, Parameter: param, Value: value})
	}
}

func writeParamInfo(w io.Writer, info module.ParameterInfo) error {
	if err := writeString(w, info.Name); err != nil {
		return err
	}
	if err := writeString(w, info.Description); err != nil {
		return err
	}
	if err := writeU8(w, byte(info.Type)); err != nil {
		return err
	}
	if err := writeF32(w, info.Min); err != nil {
		return err
	}
	if err := writeF32(w, info.Max); err != nil {
		return err
	}
	if err := writeF32(w, info.Step); err != nil {
		return err
	}
	if err := writeU8(w, byte(info.Category)); err != nil {
		return err
	}
	if err := writeString(w, info.DisplayName); err != nil {
		return err
	}
	if err := writeString(w, info.Default); err != nil {
		return err
	}
	if err := writeU16(w, uint16(len(info.Selection))); err != nil {
		return err
	}
	for _, sel := range info.Selection {
		if err := writeString(w, sel.Value); err != nil {
			return err
		}
		if err := writeString(w, sel.DisplayName); err != nil {
			return err
		}
		if err := writeString(w, sel.Description); err != nil {
			return err
		}
	}
	return nil
}

func readParamInfo(r io.Reader) (module.ParameterInfo, error) {
	var info module.ParameterInfo
	var err error
	if info.Name, err = readString(r); err != nil {
		return info, err
	}
	if info.Description, err = readString(r); err != nil {
		return info, err
	}
	typ, err := readU8(r)
	if err != nil {
		return info, err
	}
	info.Type = module.ParameterType(typ)
	if info.Min, err = readF32(r); err != nil {
		return info, err
	}
	if info.Max, err = readF32(r); err != nil {
		return info, err
	}
	if info.Step, err = readF32(r); err != nil {
		return info, err
	}
	cat, err := readU8(r)
	if err != nil {
		return info, err
	}
	info.Category = int(cat)
	if info.DisplayName, err = readString(r); err != nil {
		return info, err
	}
	if info.Default, err = readString(r); err != nil {
		return info, err
	}
	count, err := readU16(r)
	if err != nil {
		return info, err
	}
	info.Selection = make([]module.SelectionEntry, count)
	for i := range info.Selection {
		if info.Selection[i].Value, err = readString(r); err != nil {
			return info, err
		}
		if info.Selection[i].DisplayName, err = readString(r); err != nil {
			return info, err
		}
		if info.Selection[i].Description, err = readString(r); err != nil {
			return info, err
		}
	}
	return info, nil
}
