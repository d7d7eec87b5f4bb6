package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/ports"
)

// LintSuites reports suspicious suite definitions without registering them.
// Findings are warnings: only a file that cannot be loaded is an error.
type LintSuites struct {
	suites  ports.SuiteInspector
	checker ports.SelectorChecker
}

func NewLintSuites(si ports.SuiteInspector, sc ports.SelectorChecker) *LintSuites {
	return &LintSuites{suites: si, checker: sc}
}

func (uc *LintSuites) Execute(ctx context.Context, paths []string) ([]domain.LintIssue, error) {
	var issues []domain.LintIssue

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return issues, err
		}

		opts, notes, err := uc.suites.InspectSuite(p)
		if err != nil {
			return issues, err
		}
		issues = append(issues, notes...)
		issues = append(issues, uc.lintSuite(p, opts, nil)...)
	}

	return issues, nil
}

func (uc *LintSuites) lintSuite(path string, o domain.SuiteOptions, parents []string) []domain.LintIssue {
	var issues []domain.LintIssue

	name := o.SuiteName
	if name == "" {
		name = fmt.Sprintf("<unnamed #%d>", len(parents))
		issues = append(issues, domain.LintIssue{
			Path:    path,
			Suite:   strings.Join(parents, " / "),
			Field:   "suiteName",
			Message: domain.ErrMissingSuiteName.Error(),
		})
	}
	suitePath := append(parents[:len(parents):len(parents)], name)
	suite := strings.Join(suitePath, " / ")

	check := func(field string, selectors []string) {
		for _, sel := range selectors {
			if err := uc.checker.CheckSelector(sel); err != nil {
				issues = append(issues, domain.LintIssue{
					Path:    path,
					Suite:   suite,
					Field:   field,
					Message: err.Error(),
				})
			}
		}
	}

	check("selector", o.Selector)
	check("ignore", o.Ignore)
	check("before", domain.SelectorsOf(domain.RecordActions(o.Before)))
	check("after", domain.SelectorsOf(domain.RecordActions(o.After)))
	for _, c := range o.Capture.Entries() {
		check("capture."+c.Name, domain.SelectorsOf(domain.RecordActions(c.Fn)))
	}

	if o.URL.IsSet() && strings.TrimSpace(o.URL.String()) != o.URL.String() {
		issues = append(issues, domain.LintIssue{
			Path:    path,
			Suite:   suite,
			Field:   "url",
			Message: "url has leading or trailing whitespace",
		})
	}

	// Patterns could select browsers lint cannot enumerate.
	if names := o.Browsers.Names(); len(names) > 0 && len(o.Browsers.Patterns()) == 0 {
		for i, rule := range o.Skip.Rules() {
			if !matchesAny(rule.Browser, names) {
				issues = append(issues, domain.LintIssue{
					Path:    path,
					Suite:   suite,
					Field:   fmt.Sprintf("skip[%d]", i),
					Message: fmt.Sprintf("skip rule %s matches none of the suite browsers (%s)", rule.Browser, o.Browsers),
				})
			}
		}
	}

	for _, child := range o.ChildSuites {
		issues = append(issues, uc.lintSuite(path, child, suitePath)...)
	}
	return issues
}

func matchesAny(m domain.BrowserMatcher, ids []string) bool {
	for _, id := range ids {
		if m.Matches(id) {
			return true
		}
	}
	return false
}
