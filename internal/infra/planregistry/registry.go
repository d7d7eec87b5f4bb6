// Package planregistry implements ports.SuiteRegistry in memory and keeps a
// record of everything registered, so a suite tree can be inspected without a
// browser.
package planregistry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/ports"
)

// Registry records registered suites. Suites registered while another suite's
// setup runs become its children. A Registry is not safe for concurrent use.
type Registry struct {
	rootURL *url.URL

	roots []*node
	stack []*node
}

type node struct {
	plan         domain.SuitePlan
	children     []*node
	captureNames map[string]bool
	err          error
}

type Option func(*Registry)

// WithRootURL resolves every suite url against base. An unparsable base is ignored.
func WithRootURL(base string) Option {
	return func(r *Registry) {
		base = strings.TrimSpace(base)
		if base == "" {
			return
		}
		u, err := url.Parse(base)
		if err != nil || !u.IsAbs() {
			return
		}
		r.rootURL = u
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.PlanRegistry = (*Registry)(nil)

// Suite registers name under the suite whose setup is currently running, or
// as a root. The suite stays registered even when setup fails.
func (r *Registry) Suite(name string, setup func(ports.SuiteHandle) error) error {
	if name == "" {
		return &domain.OpError{
			Op:   "planregistry.suite",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrMissingSuiteName,
		}
	}

	var path []string
	siblings := &r.roots
	if len(r.stack) > 0 {
		parent := r.stack[len(r.stack)-1]
		path = append(path, parent.plan.Path...)
		siblings = &parent.children
	}

	for _, s := range *siblings {
		if s.plan.Name == name {
			return &domain.OpError{
				Op:   "planregistry.suite",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("%w: %q", domain.ErrDuplicateSuite, strings.Join(append(path, name), " / ")),
			}
		}
	}

	n := &node{
		plan: domain.SuitePlan{
			Name: name,
			Path: append(path, name),
		},
		captureNames: map[string]bool{},
	}
	*siblings = append(*siblings, n)

	if setup == nil {
		return nil
	}

	r.stack = append(r.stack, n)
	err := setup(&handle{r: r, n: n})
	r.stack = r.stack[:len(r.stack)-1]

	if err != nil {
		return err
	}
	return n.err
}

// Plans returns a snapshot of the registered roots in registration order.
func (r *Registry) Plans() []domain.SuitePlan {
	return snapshot(r.roots)
}

// Reset forgets every registered suite.
func (r *Registry) Reset() {
	r.roots = nil
	r.stack = nil
}

func snapshot(nodes []*node) []domain.SuitePlan {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]domain.SuitePlan, 0, len(nodes))
	for _, n := range nodes {
		p := n.plan
		p.Path = cloneStrings(p.Path)
		p.CaptureElements = cloneStrings(p.CaptureElements)
		p.Ignore = cloneStrings(p.Ignore)
		p.Before = cloneSteps(p.Before)
		p.After = cloneSteps(p.After)
		if p.Captures != nil {
			caps := make([]domain.CapturePlan, len(p.Captures))
			for i, c := range p.Captures {
				caps[i] = domain.CapturePlan{Name: c.Name, Steps: cloneSteps(c.Steps)}
			}
			p.Captures = caps
		}
		if p.Skips != nil {
			skips := make([]domain.SkipPlan, len(p.Skips))
			for i, s := range p.Skips {
				skips[i] = domain.SkipPlan{Browser: cloneBrowser(s.Browser), Reason: s.Reason}
			}
			p.Skips = skips
		}
		if p.Browsers != nil {
			b := cloneBrowser(*p.Browsers)
			p.Browsers = &b
		}
		p.Children = snapshot(n.children)
		out = append(out, p)
	}
	return out
}

func (r *Registry) absolute(raw string) string {
	if r.rootURL == nil {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return r.rootURL.ResolveReference(ref).String()
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneSteps(in []domain.ActionStep) []domain.ActionStep {
	if in == nil {
		return nil
	}
	out := make([]domain.ActionStep, len(in))
	copy(out, in)
	return out
}

func cloneBrowser(b domain.BrowserPlan) domain.BrowserPlan {
	return domain.BrowserPlan{Names: cloneStrings(b.Names), Patterns: cloneStrings(b.Patterns)}
}
