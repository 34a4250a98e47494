package engine

import (
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/dragontooth/launcher/internal/launcherr"
	"github.com/dragontooth/launcher/internal/logging"
	"github.com/dragontooth/launcher/internal/module"
)

// ThreadedInstance controls an engine child running as a separate
// process, speaking the binary pipe protocol over its stdin/stdout
// (spec §4.9). Spawning and shutdown follow the same process-group and
// grace-period pattern used elsewhere in this codebase for supervised
// child processes.
type ThreadedInstance struct {
	cmd  *exec.Cmd
	sess *session

	stdin  io.WriteCloser
	stdout io.ReadCloser

	log *logging.Logger

	doneCh  chan struct{}
	waitErr error
}

// Spawn starts binary as the engine child, performs the startup
// handshake (spec §4.9: the launcher writes the log file path and a
// flags byte — bit 0x1 requesting the engine log to console — then
// reads one synchronization byte back), and returns a ready
// ThreadedInstance.
func Spawn(ctx context.Context, binary string, args []string, logFilePath string, useConsole bool, log *logging.Logger) (*ThreadedInstance, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, launcherr.Wrap(launcherr.IOFailed, "engine", err, "open engine stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, launcherr.Wrap(launcherr.IOFailed, "engine", err, "open engine stdout pipe")
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, launcherr.Wrap(launcherr.IOFailed, "engine", err, "start engine process")
	}

	inst := &ThreadedInstance{
		cmd:    cmd,
		sess:   newSession(stdin, stdout),
		stdin:  stdin,
		stdout: stdout,
		log:    log,
		doneCh: make(chan struct{}),
	}

	if err := inst.handshake(logFilePath, useConsole); err != nil {
		_ = inst.kill()
		return nil, err
	}

	go inst.waitForExit()

	return inst, nil
}

func (e *ThreadedInstance) handshake(logFilePath string, useConsole bool) error {
	if err := writeString(e.stdin, logFilePath); err != nil {
		return err
	}
	var flags byte
	if useConsole {
		flags |= 0x1
	}
	if err := writeU8(e.stdin, flags); err != nil {
		return err
	}
	if _, err := readU8(e.stdout); err != nil {
		return launcherr.Wrap(launcherr.ProtocolFailed, "engine", err, "engine handshake sync byte")
	}
	return nil
}

func (e *ThreadedInstance) waitForExit() {
	e.waitErr = e.cmd.Wait()
	close(e.doneCh)
}

// Exited reports whether the child process has already terminated,
// without blocking (used by the lifecycle coordinator's pulse check).
func (e *ThreadedInstance) Exited() bool {
	select {
	case <-e.doneCh:
		return true
	default:
		return false
	}
}

// PeekGameExited checks, without blocking, whether the engine has sent
// an unsolicited game-exit notification on the pipe rather than a
// reply to a command — the documented path for a game quitting on its
// own instead of being stopped (spec §4.10, §5).
func (e *ThreadedInstance) PeekGameExited() (bool, []ParamValue, error) {
	return e.sess.peekExited()
}

// PID returns the engine child's process ID, or 0 if it never started.
func (e *ThreadedInstance) PID() int {
	if e.cmd.Process == nil {
		return 0
	}
	return e.cmd.Process.Pid
}

func (e *ThreadedInstance) kill() error {
	if e.cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-e.cmd.Process.Pid, syscall.SIGKILL)
}

// Close requests an orderly shutdown, falling back to SIGKILL of the
// whole process group if the child does not exit within grace.
func (e *ThreadedInstance) Close() error {
	if e.cmd.Process == nil {
		return nil
	}

	_ = e.StopProcess()

	select {
	case <-e.doneCh:
		return nil
	case <-time.After(5 * time.Second):
	}

	_ = syscall.Kill(-e.cmd.Process.Pid, syscall.SIGTERM)

	select {
	case <-e.doneCh:
		return nil
	case <-time.After(5 * time.Second):
		return e.kill()
	}
}

func (e *ThreadedInstance) StopProcess() error {
	return e.sess.simple(TagStopProcess, nil)
}

func (e *ThreadedInstance) GetProperty(p Property) (string, error) {
	var out string
	err := e.sess.call(TagGetProperty,
		func(w io.Writer) error { return writeU8(w, byte(p)) },
		func(r io.Reader) error {
			var err error
			out, err = readString(r)
			return err
		})
	return out, err
}

func (e *ThreadedInstance) LoadModules() error {
	return e.sess.simple(TagLoadModules, nil)
}

func (e *ThreadedInstance) GetModuleStatus(name, version string) (module.Status, int, error) {
	var errorCode int
	err := e.sess.call(TagGetModuleStatus,
		func(w io.Writer) error {
			if err := writeString(w, name); err != nil {
				return err
			}
			return writeString(w, version)
		},
		func(r io.Reader) error {
			code, err := readU16(r)
			if err != nil {
				return err
			}
			errorCode = int(code)
			return nil
		})
	status := module.StatusReady
	if errorCode != 0 {
		status = module.StatusBroken
	}
	return status, errorCode, err
}

func (e *ThreadedInstance) GetModuleParamList(name, version string) ([]module.ParameterInfo, error) {
	var out []module.ParameterInfo
	err := e.sess.call(TagGetModuleParamList,
		func(w io.Writer) error {
			if err := writeString(w, name); err != nil {
				return err
			}
			return writeString(w, version)
		},
		func(r io.Reader) error {
			count, err := readU16(r)
			if err != nil {
				return err
			}
			out = make([]module.ParameterInfo, count)
			for i := range out {
				if out[i], err = readParamInfo(r); err != nil {
					return err
				}
			}
			return nil
		})
	return out, err
}

func (e *ThreadedInstance) SetModuleParameter(name, version, parameter, value string) error {
	return e.sess.simple(TagSetModuleParameter, func(w io.Writer) error {
		for _, s := range []string{name, version, parameter, value} {
			if err := writeString(w, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *ThreadedInstance) ActivateModule(name, version string) error {
	return e.sess.simple(TagActivateModule, func(w io.Writer) error {
		if err := writeString(w, name); err != nil {
			return err
		}
		return writeString(w, version)
	})
}

func (e *ThreadedInstance) EnableModule(name, version string, enable bool) error {
	return e.sess.simple(TagEnableModule, func(w io.Writer) error {
		if err := writeString(w, name); err != nil {
			return err
		}
		if err := writeString(w, version); err != nil {
			return err
		}
		return writeBool(w, enable)
	})
}

func (e *ThreadedInstance) SetDataDir(path string) error {
	return e.sess.simple(TagSetDataDir, func(w io.Writer) error { return writeString(w, path) })
}

func (e *ThreadedInstance) SetCacheAppID(appID string) error {
	return e.sess.simple(TagSetCacheAppID, func(w io.Writer) error { return writeString(w, appID) })
}

func (e *ThreadedInstance) VFSAddDiskDir(vfsPath, diskPath string, readOnly bool, hiddenPaths []string) error {
	return e.sess.simple(TagVFSAddDiskDir, func(w io.Writer) error {
		if err := writeString(w, vfsPath); err != nil {
			return err
		}
		if err := writeString(w, diskPath); err != nil {
			return err
		}
		if err := writeBool(w, readOnly); err != nil {
			return err
		}
		return writeHiddenPaths(w, hiddenPaths)
	})
}

func (e *ThreadedInstance) VFSAddScriptSharedDataDir(diskPath string) error {
	return e.sess.simple(TagVFSAddScriptSharedDataDir, func(w io.Writer) error { return writeString(w, diskPath) })
}

func (e *ThreadedInstance) VFSAddDelgaFile(delgaPath, archivePath string, hiddenPaths []string) error {
	return e.sess.simple(TagVFSAddDelgaFile, func(w io.Writer) error {
		if err := writeString(w, delgaPath); err != nil {
			return err
		}
		if err := writeString(w, archivePath); err != nil {
			return err
		}
		return writeHiddenPaths(w, hiddenPaths)
	})
}

func writeHiddenPaths(w io.Writer, hiddenPaths []string) error {
	if err := writeU16(w, uint16(len(hiddenPaths))); err != nil {
		return err
	}
	for _, p := range hiddenPaths {
		if err := writeString(w, p); err != nil {
			return err
		}
	}
	return nil
}

func (e *ThreadedInstance) SetCmdLineArgs(args string) error {
	return e.sess.simple(TagSetCmdLineArgs, func(w io.Writer) error { return writeString(w, args) })
}

func (e *ThreadedInstance) CreateRenderWindow(width, height int32, fullScreen bool, title, iconPath string) error {
	return e.sess.simple(TagCreateRenderWindow, func(w io.Writer) error {
		if err := writeU16(w, uint16(width)); err != nil {
			return err
		}
		if err := writeU16(w, uint16(height)); err != nil {
			return err
		}
		if err := writeBool(w, fullScreen); err != nil {
			return err
		}
		if err := writeString(w, title); err != nil {
			return err
		}
		return writeString(w, iconPath)
	})
}

func (e *ThreadedInstance) StartGame(scriptDir, scriptVersion, gameObject string) ([]ParamValue, error) {
	var snapshot []ParamValue
	err := e.sess.call(TagStartGame,
		func(w io.Writer) error {
			if err := writeString(w, scriptDir); err != nil {
				return err
			}
			if err := writeString(w, scriptVersion); err != nil {
				return err
			}
			return writeString(w, gameObject)
		},
		func(r io.Reader) error {
			var err error
			snapshot, err = readParamValues(r)
			return err
		})
	return snapshot, err
}

func (e *ThreadedInstance) StopGame() ([]ParamValue, error) {
	var drift []ParamValue
	err := e.sess.call(TagStopGame, nil, func(r io.Reader) error {
		var err error
		drift, err = readParamValues(r)
		return err
	})
	return drift, err
}

func (e *ThreadedInstance) GetDisplayCurrentResolution(display int) (DecPoint, error) {
	var dp DecPoint
	err := e.sess.call(TagGetDisplayCurrentResolution,
		func(w io.Writer) error { return writeU8(w, byte(display)) },
		func(r io.Reader) error {
			var err error
			dp, err = readDecPoint(r)
			return err
		})
	return dp, err
}

func (e *ThreadedInstance) GetDisplayResolutions(display, maxCount int) ([]DecPoint, error) {
	var out []DecPoint
	err := e.sess.call(TagGetDisplayResolutions,
		func(w io.Writer) error {
			if err := writeU8(w, byte(display)); err != nil {
				return err
			}
			return writeU8(w, byte(maxCount))
		},
		func(r io.Reader) error {
			count, err := readU8(r)
			if err != nil {
				return err
			}
			out = make([]DecPoint, count)
			for i := range out {
				if out[i], err = readDecPoint(r); err != nil {
					return err
				}
			}
			return nil
		})
	return out, err
}

func (e *ThreadedInstance) ReadDelgaGameDefs(delgaPath string) ([]string, error) {
	return e.readDelgaDefs(TagReadDelgaGameDefs, delgaPath)
}

func (e *ThreadedInstance) ReadDelgaPatchDefs(delgaPath string) ([]string, error) {
	return e.readDelgaDefs(TagReadDelgaPatchDefs, delgaPath)
}

func (e *ThreadedInstance) readDelgaDefs(tag Tag, delgaPath string) ([]string, error) {
	var out []string
	err := e.sess.call(tag,
		func(w io.Writer) error { return writeString(w, delgaPath) },
		func(r io.Reader) error {
			count, err := readU16(r)
			if err != nil {
				return err
			}
			out = make([]string, count)
			for i := range out {
				if out[i], err = readString(r); err != nil {
					return err
				}
			}
			return nil
		})
	return out, err
}

func (e *ThreadedInstance) ReadDelgaFiles(delgaPath string, paths []string) ([][]byte, error) {
	var out [][]byte
	err := e.sess.call(TagReadDelgaFiles,
		func(w io.Writer) error {
			if err := writeString(w, delgaPath); err != nil {
				return err
			}
			if err := writeU16(w, uint16(len(paths))); err != nil {
				return err
			}
			for _, p := range paths {
				if err := writeString(w, p); err != nil {
					return err
				}
			}
			return nil
		},
		func(r io.Reader) error {
			out = make([][]byte, len(paths))
			for i := range out {
				data, err := readBytes(r)
				if err != nil {
					return err
				}
				out[i] = data
			}
			return nil
		})
	return out, err
}

func (e *ThreadedInstance) SetPathOverlayCaptureConfig(kind PathKind, path string) error {
	return e.sess.simple(TagSetPathOverlayCaptureConfig, func(w io.Writer) error {
		if err := writeU8(w, byte(kind)); err != nil {
			return err
		}
		return writeString(w, path)
	})
}
