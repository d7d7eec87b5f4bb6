package planstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/ports"
)

const defaultPlansDir = "plans"

type JSONStore struct {
	rootDir      string
	plansDirName string
	writeIndex   bool
	now          func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: plans/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	plansDir := cfg.Paths.PlansDir
	if strings.TrimSpace(plansDir) == "" {
		plansDir = defaultPlansDir
	}

	s := &JSONStore{
		rootDir:      root,
		plansDirName: plansDir,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.PlanStore = (*JSONStore)(nil)

// SavePlan writes plan as <timestamp>_<slug>.json and returns the file name
// without extension as its id. A second plan in the same second gets a _N suffix.
func (s *JSONStore) SavePlan(plan domain.Plan) (string, error) {
	dir := filepath.Join(s.rootDir, s.plansDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "planstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := plan.CreatedAt
	if ts.IsZero() {
		ts = s.now()
		plan.CreatedAt = ts
	}
	ts = ts.UTC()

	slug := slugify(planLabel(plan))
	if slug == "" {
		slug = "plan"
	}

	base := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	id, path, err := uniquePath(dir, base)
	if err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "planstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "planstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "planstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filepath.Base(path), plan)
	}

	return id, nil
}

func uniquePath(dir, base string) (string, string, error) {
	id := base
	for n := 2; ; n++ {
		path := filepath.Join(dir, id+".json")
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return id, path, nil
		}
		if err != nil {
			return "", "", &domain.OpError{
				Op:   "planstore.stat",
				Kind: domain.KindExecution,
				Path: path,
				Err:  err,
			}
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// planLabel names a plan after its only root suite, or its workspace.
func planLabel(plan domain.Plan) string {
	if len(plan.Suites) == 1 {
		return plan.Suites[0].Name
	}
	if plan.Workspace != "" {
		return filepath.Base(plan.Workspace)
	}
	return ""
}

func (s *JSONStore) appendIndex(dir, id, filename string, plan domain.Plan) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Sources   []string  `json:"sources"`
		Suites    int       `json:"suites"`
		CreatedAt time.Time `json:"created_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Sources:   plan.Sources,
		Suites:    plan.CountSuites(),
		CreatedAt: plan.CreatedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
