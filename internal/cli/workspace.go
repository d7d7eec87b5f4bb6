package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/infra/cssselector"
	"github.com/aalvaropc/shotsuite/internal/infra/logger"
	"github.com/aalvaropc/shotsuite/internal/infra/planstore"
	"github.com/aalvaropc/shotsuite/internal/infra/suitefinder"
	"github.com/aalvaropc/shotsuite/internal/infra/workspacefinder"
	"github.com/aalvaropc/shotsuite/internal/infra/yamlsuite"
	"github.com/aalvaropc/shotsuite/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	log  *slog.Logger

	suites  *yamlsuite.Loader
	catalog ports.SuiteCatalog
	checker ports.SelectorChecker
	store   ports.PlanStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	log := logger.L().With("workspace", root)

	return &workspaceCtx{
		root: root,
		cfg:  cfg,
		log:  log,
		suites: yamlsuite.NewLoader(
			root,
			yamlsuite.WithSuitesDir(cfg.Paths.SuitesDir),
			yamlsuite.WithLogger(log),
		),
		catalog: suitefinder.NewFinder(
			suitefinder.WithSuitesDir(cfg.Paths.SuitesDir),
			suitefinder.WithPattern(cfg.SuitePattern),
		),
		checker: cssselector.NewChecker(),
		store:   planstore.NewJSONStore(root, cfg, planstore.WithIndex(true)),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `shotsuite init`): %w", wd, err)
	}
	return root, nil
}

// resolveSuitePaths maps suite arguments to files. An argument is a path
// (relative to the workspace root), a file name under the suites dir, or a
// suite name / doublestar glob. Names are matched against file-derived names
// first, then against the suiteName declared in each file. No arguments
// selects every suite in the workspace.
// selectByDeclaredName returns the refs whose root suiteName matches pattern.
// Files that fail to load are skipped; lint reports them.
func (ws *workspaceCtx) selectByDeclaredName(refs []domain.SuiteRef, pattern string) []domain.SuiteRef {
	if !doublestar.ValidatePattern(pattern) {
		return nil
	}
	var out []domain.SuiteRef
	for _, r := range refs {
		opts, err := ws.suites.LoadSuite(r.Path)
		if err != nil {
			ws.log.Debug("suite.select.skip", "path", r.Path, "error", err)
			continue
		}
		if ok, _ := doublestar.Match(pattern, opts.SuiteName); ok {
			out = append(out, r)
		}
	}
	return out
}

func resolveSuitePaths(ws *workspaceCtx, args []string) ([]string, error) {
	var refs []domain.SuiteRef
	listed := false
	list := func() ([]domain.SuiteRef, error) {
		if listed {
			return refs, nil
		}
		var err error
		refs, err = ws.catalog.ListSuites(ws.root)
		listed = err == nil
		return refs, err
	}

	if len(args) == 0 {
		all, err := list()
		if err != nil {
			return nil, err
		}
		if len(all) == 0 {
			return nil, fmt.Errorf("no suites found in %q", filepath.Join(ws.root, ws.cfg.Paths.SuitesDir))
		}
		return refPaths(all), nil
	}

	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	suitesDir := filepath.Join(ws.root, ws.cfg.Paths.SuitesDir)
	for _, arg := range args {
		in := strings.TrimSpace(arg)
		if in == "" {
			continue
		}

		if looksLikePath(in) {
			p := in
			if !filepath.IsAbs(p) {
				p = filepath.Join(ws.root, p)
			}
			p = filepath.Clean(p)
			if !fileExists(p) {
				return nil, fmt.Errorf("suite file %q not found", in)
			}
			add(p)
			continue
		}

		if hasYAMLExt(in) {
			if p := filepath.Join(suitesDir, in); fileExists(p) {
				add(p)
				continue
			}
		}

		all, err := list()
		if err != nil {
			return nil, err
		}
		matched, err := suitefinder.Select(all, []string{in})
		if err != nil {
			return nil, err
		}
		if len(matched) == 0 {
			matched = ws.selectByDeclaredName(all, in)
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("suite %q not found in %q", in, suitesDir)
		}
		for _, p := range refPaths(matched) {
			add(p)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no suites selected")
	}
	return out, nil
}

func refPaths(refs []domain.SuiteRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Path)
	}
	return out
}

// looksLikePath reports whether s names a file rather than a suite.
func looksLikePath(s string) bool {
	if filepath.IsAbs(s) || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") {
		return true
	}
	return hasYAMLExt(s) && strings.ContainsAny(s, `/\`)
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
