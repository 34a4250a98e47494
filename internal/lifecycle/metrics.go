package lifecycle

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dragontooth/launcher/internal/launcherr"
)

// pidProvider is implemented by engine instances that run as a
// separate OS process and can report their PID for metrics collection.
type pidProvider interface {
	PID() int
}

// MemoryUsageMB reads the active engine child's resident set size from
// /proc/<pid>/status, returning 0 if no run is active or the process
// is not backed by a real PID (e.g. a DirectInstance).
func (c *Coordinator) MemoryUsageMB() int64 {
	c.mu.RLock()
	inst := c.inst
	c.mu.RUnlock()

	provider, ok := inst.(pidProvider)
	if !ok {
		return 0
	}
	pid := provider.PID()
	if pid <= 0 {
		return 0
	}

	mb, err := readVmRSS(pid)
	if err != nil {
		return 0
	}
	return mb
}

// readVmRSS reads the VmRSS line of /proc/<pid>/status, in kilobytes,
// and returns it converted to megabytes.
func readVmRSS(pid int) (int64, error) {
	statusPath := fmt.Sprintf("/proc/%d/status", pid)
	data, err := os.ReadFile(statusPath)
	if err != nil {
		return 0, launcherr.Wrapf(launcherr.IOFailed, "lifecycle", err, "read %s", statusPath)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, launcherr.Wrap(launcherr.InvalidFormat, "lifecycle", err, "parse VmRSS")
		}
		return kb / 1024, nil
	}
	return 0, launcherr.Newf(launcherr.NotFound, "lifecycle", "VmRSS not present in %s", statusPath)
}
