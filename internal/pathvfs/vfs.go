// Package pathvfs implements the launcher's path resolution (C1) and
// the layered virtual filesystem used to compose a per-run view of a
// game's data directory over writable overlay/config/capture
// directories (spec §4.1, §8 scenario 6).
package pathvfs

import (
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/dragontooth/launcher/internal/launcherr"
)

// Container is one layer of the VFS stack: either a native directory or
// (conceptually, mounted via the engine) a DELGA archive subtree. Only
// the disk container is modeled in the launcher process itself — DELGA
// mounting happens inside the engine child via the vfs-add-delga-file
// command (C9); the launcher only tracks the container's declared shape
// so vfs-add-* calls can be replayed and so local tooling can reason
// about shadowing without spawning the engine.
type Container struct {
	VirtualRoot string          // virtual path this container is mounted at
	Backing     afero.Fs        // nil for archive containers (opaque to the launcher)
	NativeDir   string          // native directory backing this container, if a disk container
	ReadOnly    bool
	Hidden      map[string]bool // paths inside this subtree pretended not to exist
	IsArchive   bool
	ArchivePath string // native path of the backing DELGA, if IsArchive
}

func (c *Container) hides(virtualPath string) bool {
	if len(c.Hidden) == 0 {
		return false
	}
	return c.Hidden[virtualPath]
}

// HiddenPaths returns this container's hidden path set as a sorted
// slice, for replaying onto the engine's vfs-add-disk-dir/
// vfs-add-delga-file commands in a deterministic order.
func (c *Container) HiddenPaths() []string {
	out := make([]string, 0, len(c.Hidden))
	for p := range c.Hidden {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// VFS is an insertion-ordered stack of containers. Lookup walks the
// stack from the most recently mounted container back to the first;
// later containers shadow earlier ones for the same virtual path
// (spec §4.1).
type VFS struct {
	mu         sync.RWMutex
	containers []*Container
}

// New returns an empty VFS.
func New() *VFS {
	return &VFS{}
}

// Mount appends a container to the stack. Later mounts shadow earlier
// ones at the same virtual path.
func (v *VFS) Mount(c *Container) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.containers = append(v.containers, c)
}

// MountDisk is a convenience wrapper mounting a native directory,
// matching the shape of the C9 vfs-add-disk-dir command.
func (v *VFS) MountDisk(virtualRoot, nativeDir string, readOnly bool, hidden []string) {
	hiddenSet := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		hiddenSet[h] = true
	}
	v.Mount(&Container{
		VirtualRoot: virtualRoot,
		Backing:     afero.NewBasePathFs(afero.NewOsFs(), nativeDir),
		NativeDir:   nativeDir,
		ReadOnly:    readOnly,
		Hidden:      hiddenSet,
	})
}

// MountArchive registers a DELGA archive container. The launcher does
// not read archive bytes itself (that is the engine's job, spec §4.5);
// this only records the mount so the stack can be replayed onto a new
// engine instance and so shadowing calculations include it.
func (v *VFS) MountArchive(virtualRoot, archivePath string, hidden []string) {
	hiddenSet := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		hiddenSet[h] = true
	}
	v.Mount(&Container{
		VirtualRoot: virtualRoot,
		IsArchive:   true,
		ArchivePath: archivePath,
		ReadOnly:    true,
		Hidden:      hiddenSet,
	})
}

// Containers returns a snapshot of the mounted containers in mount
// order, for replaying onto a freshly started engine instance.
func (v *VFS) Containers() []*Container {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]*Container, len(v.containers))
	copy(out, v.containers)
	return out
}

// resolve finds the most-recently-mounted container that owns
// virtualPath and is not hiding it, walking the stack back-to-front so
// later mounts shadow earlier ones. Archive containers never resolve
// locally since the launcher cannot read their contents directly.
func (v *VFS) resolve(virtualPath string) (*Container, string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for i := len(v.containers) - 1; i >= 0; i-- {
		c := v.containers[i]
		if c.IsArchive {
			continue
		}
		rel, ok := under(c.VirtualRoot, virtualPath)
		if !ok {
			continue
		}
		if c.hides(virtualPath) {
			continue
		}
		if _, err := c.Backing.Stat(rel); err == nil {
			return c, rel, nil
		}
	}
	return nil, "", launcherr.Newf(launcherr.NotFound, "pathvfs", "no container provides %q", virtualPath)
}

// under reports whether virtualPath lies under root, returning the
// path relative to root (using "/" as the always-present separator).
func under(root, virtualPath string) (string, bool) {
	root = path.Clean("/" + root)
	virtualPath = path.Clean("/" + virtualPath)
	if root == "/" {
		return strings.TrimPrefix(virtualPath, "/"), true
	}
	if virtualPath == root {
		return ".", true
	}
	if strings.HasPrefix(virtualPath, root+"/") {
		return strings.TrimPrefix(virtualPath, root+"/"), true
	}
	return "", false
}

// Open resolves virtualPath against the container stack and opens it
// for reading, returning the contents of whichever container currently
// shadows that path (spec §8 scenario 6).
func (v *VFS) Open(virtualPath string) (fs.File, error) {
	c, rel, err := v.resolve(virtualPath)
	if err != nil {
		return nil, err
	}
	f, err := c.Backing.Open(rel)
	if err != nil {
		return nil, launcherr.Wrapf(launcherr.IOFailed, "pathvfs", err, "open %q", virtualPath)
	}
	return f, nil
}

// Create opens virtualPath for writing in the topmost container that
// both owns the path's subtree and is writable. Writes against a
// read-only container fail (spec §4.1).
func (v *VFS) Create(virtualPath string) (io.WriteCloser, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for i := len(v.containers) - 1; i >= 0; i-- {
		c := v.containers[i]
		if c.IsArchive {
			continue
		}
		rel, ok := under(c.VirtualRoot, virtualPath)
		if !ok {
			continue
		}
		if c.hides(virtualPath) {
			continue
		}
		if c.ReadOnly {
			return nil, launcherr.Newf(launcherr.IOFailed, "pathvfs", "container at %q is read-only", c.VirtualRoot)
		}
		f, err := c.Backing.Create(rel)
		if err != nil {
			return nil, launcherr.Wrapf(launcherr.IOFailed, "pathvfs", err, "create %q", virtualPath)
		}
		return f, nil
	}
	return nil, launcherr.Newf(launcherr.NotFound, "pathvfs", "no container provides %q", virtualPath)
}

// SortedVirtualRoots returns the distinct virtual roots currently
// mounted, sorted, for diagnostics.
func (v *VFS) SortedVirtualRoots() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	seen := make(map[string]bool)
	var roots []string
	for _, c := range v.containers {
		if !seen[c.VirtualRoot] {
			seen[c.VirtualRoot] = true
			roots = append(roots, c.VirtualRoot)
		}
	}
	sort.Strings(roots)
	return roots
}
