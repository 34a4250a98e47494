package module

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"path"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/dragontooth/launcher/internal/launcherr"
	"github.com/dragontooth/launcher/internal/logging"
	"github.com/dragontooth/launcher/internal/xmlcodec"
)

const hashBlockSize = 4096

// Registry holds every module discovered under a library root, grounded
// on supervisor/internal/process/manager.go's concurrent-scan shape
// (errgroup-backed, collect-then-lock) adapted from process discovery to
// manifest discovery.
type Registry struct {
	mu      sync.RWMutex
	modules map[Key]*EngineModule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[Key]*EngineModule)}
}

// Scan walks fs under libRoot/modules/<kind>/<family>/<version>/module.xml,
// decoding every manifest it finds and hashing the declared library file,
// concurrently across kind directories (spec §4.4).
func (r *Registry) Scan(ctx context.Context, fs afero.Fs, libRoot string, log *logging.Logger) error {
	modulesRoot := path.Join(libRoot, "modules")

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan *EngineModule)
	done := make(chan struct{})

	var collected []*EngineModule
	go func() {
		for m := range results {
			collected = append(collected, m)
		}
		close(done)
	}()

	for _, kind := range AllKinds {
		kind := kind
		kindDir := path.Join(modulesRoot, string(kind))
		families, err := afero.ReadDir(fs, kindDir)
		if err != nil {
			continue // no modules of this kind installed
		}
		for _, fam := range families {
			if !fam.IsDir() {
				continue
			}
			familyDir := path.Join(kindDir, fam.Name())
			g.Go(func() error {
				return scanFamily(gctx, fs, kind, familyDir, results, log)
			})
		}
	}

	err := g.Wait()
	close(results)
	<-done
	if err != nil {
		return err
	}

	r.mu.Lock()
	for _, m := range collected {
		r.modules[m.Key] = m
	}
	r.mu.Unlock()
	return nil
}

func scanFamily(ctx context.Context, fs afero.Fs, kind Kind, familyDir string, out chan<- *EngineModule, log *logging.Logger) error {
	versions, err := afero.ReadDir(fs, familyDir)
	if err != nil {
		return launcherr.Wrap(launcherr.IOFailed, "module", err, "read family directory "+familyDir)
	}
	for _, v := range versions {
		if !v.IsDir() {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		versionDir := path.Join(familyDir, v.Name())
		manifestPath := path.Join(versionDir, "module.xml")
		data, err := afero.ReadFile(fs, manifestPath)
		if err != nil {
			if log != nil {
				log.Warn("module", "no module.xml in "+versionDir)
			}
			continue
		}

		mx, err := xmlcodec.DecodeModule(data)
		if err != nil {
			if log != nil {
				log.Warn("module", "malformed manifest "+manifestPath+": "+err.Error())
			}
			continue
		}

		m := &EngineModule{
			Key:          Key{Name: mx.Name, Version: mx.Version},
			Kind:         kind,
			Description:  mx.Description,
			Author:       mx.Author,
			Directory:    versionDir,
			Pattern:      mx.Pattern,
			Priority:     mx.Priority,
			IsFallback:   mx.Fallback,
			LibraryFile:  path.Join(versionDir, mx.Library.File),
			ExpectedSize: mx.Library.Size,
			ExpectedHash: mx.Library.SHA1,
			EntryPoint:   mx.Library.EntryPoint,
		}

		size, sum, err := hashLibrary(fs, m.LibraryFile)
		if err != nil {
			m.Status = StatusBroken
			if log != nil {
				log.Warn("module", "cannot hash library for "+m.Key.Name+" "+m.Key.Version+": "+err.Error())
			}
		} else {
			m.ObservedSize = size
			m.ObservedHash = sum
		}

		select {
		case out <- m:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// hashLibrary computes the size and SHA-1 hash of path in fs, reading in
// fixed 4 KiB blocks (spec §4.4).
func hashLibrary(fs afero.Fs, libPath string) (int64, string, error) {
	f, err := fs.Open(libPath)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, hashBlockSize)
	var total int64
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, "", err
		}
	}
	return total, hex.EncodeToString(h.Sum(nil)), nil
}

// All returns every registered module, across all kinds.
func (r *Registry) All() []*EngineModule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*EngineModule, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	return out
}

// Put inserts or replaces a module record directly, bypassing Scan.
// Used by callers that construct EngineModule records from a source
// other than a manifest scan (tests, or a pre-populated fixture set).
func (r *Registry) Put(m *EngineModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[m.Key] = m
}

// Get looks up a module by its exact family/version key.
func (r *Registry) Get(key Key) (*EngineModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[key]
	return m, ok
}

// ByFamily returns every known version of the named module family, in
// map iteration order (not defined, and not stable across calls).
func (r *Registry) ByFamily(name string) []*EngineModule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*EngineModule
	for _, m := range r.modules {
		if m.Key.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// BestForKind picks the single best module of kind among the registry's
// contents, skipping names in disabled (spec §4.4/§8 scenario 2):
// non-fallback beats fallback; among equals, the higher version wins;
// ties broken by priority. Candidates still tied after that come out in
// map iteration order, so which of them is returned is not defined.
func (r *Registry) BestForKind(kind Kind, disabled map[Key]bool) (*EngineModule, bool) {
	r.mu.RLock()
	var candidates []*EngineModule
	for _, m := range r.modules {
		if m.Kind != kind {
			continue
		}
		if disabled != nil && disabled[m.Key] {
			continue
		}
		candidates = append(candidates, m)
	}
	r.mu.RUnlock()

	return pickBest(candidates)
}

func pickBest(candidates []*EngineModule) (*EngineModule, bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsFallback != b.IsFallback {
			return !a.IsFallback // non-fallback first
		}
		if cmp := CompareVersions(a.Key.Version, b.Key.Version); cmp != 0 {
			return cmp > 0 // higher version first
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return false // preserve stable insertion order
	})
	return candidates[0], true
}

// ResolveRef finds the module matching kind/name, pinned to version when
// version is non-empty, else the highest ready version of that family
// and kind (profile §4.7: "version may be empty ⇒ latest").
func (r *Registry) ResolveRef(kind Kind, name, version string, disabled map[Key]bool) (*EngineModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if version != "" {
		m, ok := r.modules[Key{Name: name, Version: version}]
		if !ok || m.Kind != kind || (disabled != nil && disabled[m.Key]) {
			return nil, false
		}
		return m, true
	}

	var best *EngineModule
	for _, m := range r.modules {
		if m.Kind != kind || m.Key.Name != name {
			continue
		}
		if disabled != nil && disabled[m.Key] {
			continue
		}
		if m.Status != StatusReady {
			continue
		}
		if best == nil || CompareVersions(m.Key.Version, best.Key.Version) > 0 {
			best = m
		}
	}
	return best, best != nil
}

// ApplyStatus folds a module-status report obtained from an engine
// instance (spec §4.9 commands 3 and 4) back into the registry entry.
func (r *Registry) ApplyStatus(key Key, status Status, errorCode int, params []ModuleParameter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[key]
	if !ok {
		return
	}
	m.Status = status
	m.ErrorCode = errorCode
	if params != nil {
		m.Parameters = params
	}
}
