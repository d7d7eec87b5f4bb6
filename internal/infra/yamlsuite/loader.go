package yamlsuite

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/ports"
	"gopkg.in/yaml.v3"
)

// Loader reads declarative suite files.
//
// Fields whose shape cannot be interpreted are dropped rather than rejected;
// InspectSuite reports what was dropped.
type Loader struct {
	rootDir   string
	suitesDir string
	log       *slog.Logger
}

type Option func(*Loader)

func WithSuitesDir(dir string) Option {
	return func(l *Loader) { l.suitesDir = dir }
}

func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		rootDir:   root,
		suitesDir: "suites",
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var (
	_ ports.SuiteLoader    = (*Loader)(nil)
	_ ports.SuiteInspector = (*Loader)(nil)
)

func (l *Loader) LoadSuite(path string) (domain.SuiteOptions, error) {
	opts, _, err := l.InspectSuite(path)
	return opts, err
}

// InspectSuite loads path and returns the dropped fields as lint issues.
// A root suite without suiteName is named after its file.
func (l *Loader) InspectSuite(path string) (domain.SuiteOptions, []domain.LintIssue, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.SuiteOptions{}, nil, &domain.OpError{
			Op:   "yamlsuite.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return domain.SuiteOptions{}, nil, &domain.OpError{
			Op:   "yamlsuite.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolve(root.Content[0])
	}
	if root.Kind != yaml.MappingNode {
		return domain.SuiteOptions{}, nil, invalidField(path, "", "suite file must contain a mapping")
	}

	d := &decoder{path: path, log: l.log}
	opts := d.suite(root, "")
	if opts.SuiteName == "" {
		opts.SuiteName = l.defaultName(path)
	}

	l.log.Debug("yamlsuite.load", "path", path, "suite", opts.SuiteName, "dropped", len(d.notes))
	return opts, d.notes, nil
}

// defaultName is the file path relative to the suites dir, without extension.
func (l *Loader) defaultName(path string) string {
	name := filepath.Base(path)

	dir := filepath.Join(l.rootDir, l.suitesDir)
	absDir, err1 := filepath.Abs(dir)
	absPath, err2 := filepath.Abs(path)
	if err1 == nil && err2 == nil {
		if rel, err := filepath.Rel(absDir, absPath); err == nil && !strings.HasPrefix(rel, "..") {
			name = rel
		}
	}

	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.ToSlash(name)
}

func invalidField(path, field, msg string) error {
	if field != "" {
		msg = fmt.Sprintf("field %s: %s", field, msg)
	}
	return &domain.OpError{
		Op:   "yamlsuite.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrInvalidConfig),
	}
}
