package suitefinder

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/ports"
)

// Finder lists suite files under the suites dir of a workspace.
type Finder struct {
	suitesDir string
	pattern   string
}

type Option func(*Finder)

func WithSuitesDir(dir string) Option {
	return func(f *Finder) { f.suitesDir = dir }
}

// WithPattern sets the doublestar glob suite files must match, relative to the suites dir.
func WithPattern(pattern string) Option {
	return func(f *Finder) {
		if strings.TrimSpace(pattern) != "" {
			f.pattern = pattern
		}
	}
}

func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		suitesDir: "suites",
		pattern:   "**/*.{yaml,yml}",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.SuiteCatalog = (*Finder)(nil)

// ListSuites returns the matching files sorted by name. A ref's name is its
// slash-separated path relative to the suites dir, without extension.
func (f *Finder) ListSuites(root string) ([]domain.SuiteRef, error) {
	dir := filepath.Join(root, f.suitesDir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "suitefinder.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}
	if !info.IsDir() {
		return nil, &domain.OpError{
			Op:   "suitefinder.list",
			Kind: domain.KindInvalidConfig,
			Path: dir,
			Err:  domain.ErrInvalidConfig,
		}
	}

	if !doublestar.ValidatePattern(f.pattern) {
		return nil, &domain.OpError{
			Op:   "suitefinder.pattern",
			Kind: domain.KindInvalidConfig,
			Err:  doublestar.ErrBadPattern,
		}
	}

	var refs []domain.SuiteRef
	err = doublestar.GlobWalk(os.DirFS(dir), f.pattern, func(p string, d fs.DirEntry) error {
		if d.IsDir() || strings.HasPrefix(path.Base(p), ".") {
			return nil
		}
		refs = append(refs, domain.SuiteRef{
			Name: strings.TrimSuffix(p, path.Ext(p)),
			Path: filepath.Join(dir, filepath.FromSlash(p)),
		})
		return nil
	})
	if err != nil {
		return nil, &domain.OpError{
			Op:   "suitefinder.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Select returns the refs whose name matches any of the patterns. A plain
// name matches exactly; names containing glob syntax use doublestar matching.
func Select(refs []domain.SuiteRef, patterns []string) ([]domain.SuiteRef, error) {
	if len(patterns) == 0 {
		return refs, nil
	}

	var out []domain.SuiteRef
	for _, r := range refs {
		for _, p := range patterns {
			ok, err := doublestar.Match(p, r.Name)
			if err != nil {
				return nil, &domain.OpError{
					Op:   "suitefinder.select",
					Kind: domain.KindInvalidConfig,
					Err:  err,
				}
			}
			if ok {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}
