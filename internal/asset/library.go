package asset

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

//go:embed sheets/*.json
var embedded embed.FS

// DefaultSheets lists the sheets the game needs.
var DefaultSheets = []string{SheetPlayer, SheetEnemies, SheetProjectiles}

// maxParallelLoads bounds the number of sheets decoded at once.
const maxParallelLoads = 4

// Library holds loaded sheets. Missing animations resolve to a placeholder,
// so lookups never fail. Safe for concurrent use.
type Library struct {
	mu           sync.RWMutex
	sheets       map[string]*Sheet
	placeholders map[string]*Animation
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		sheets:       make(map[string]*Sheet),
		placeholders: make(map[string]*Animation),
	}
}

// LoadDefault loads the embedded sheets.
func LoadDefault(ctx context.Context) (*Library, error) {
	sub, err := fs.Sub(embedded, "sheets")
	if err != nil {
		return NewLibrary(), fmt.Errorf("open embedded sheets: %w", err)
	}
	return Load(ctx, sub, DefaultSheets...)
}

// Load reads "<name>.json" from fsys for every name, concurrently.
// Loading is best-effort: the returned library always holds whatever loaded,
// and the error joins every individual failure.
func Load(ctx context.Context, fsys fs.FS, names ...string) (*Library, error) {
	lib := NewLibrary()

	var (
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	var g errgroup.Group
	g.SetLimit(maxParallelLoads)
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				fail(fmt.Errorf("load %s: %w", name, err))
				return nil
			}
			data, err := fs.ReadFile(fsys, path.Clean(name+".json"))
			if err != nil {
				fail(fmt.Errorf("load %s: %w", name, err))
				return nil
			}
			sheet, err := Parse(data)
			if err != nil {
				fail(fmt.Errorf("load %s: %w", name, err))
				return nil
			}
			lib.Add(sheet)
			return nil
		})
	}
	_ = g.Wait()

	return lib, errors.Join(errs...)
}

// Add registers a sheet, replacing any sheet with the same name.
func (l *Library) Add(s *Sheet) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sheets[s.Name] = s
}

// Sheet returns a loaded sheet by name.
func (l *Library) Sheet(name string) (*Sheet, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sheets[name]
	return s, ok
}

// Sheets returns every loaded sheet sorted by name.
func (l *Library) Sheets() []*Sheet {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Sheet, 0, len(l.sheets))
	for _, s := range l.sheets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Animation resolves sheet/name. Unknown pairs get a stable single-frame
// placeholder so callers can keep using the result.
func (l *Library) Animation(sheet, name string) *Animation {
	l.mu.RLock()
	if s, ok := l.sheets[sheet]; ok {
		if a, ok := s.Animations[name]; ok {
			l.mu.RUnlock()
			return a
		}
	}
	l.mu.RUnlock()

	key := sheet + "/" + name
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.placeholders[key]; ok {
		return a
	}
	a := &Animation{Sheet: sheet, Name: name, Frames: []*Frame{placeholderFrame()}}
	l.placeholders[key] = a
	return a
}

var _ Resolver = (*Library)(nil)
