package domain

import "time"

// SuitePlan is what a registry recorded for one suite.
type SuitePlan struct {
	Name string   `json:"name"`
	Path []string `json:"path"`

	URL         string `json:"url"`
	AbsoluteURL string `json:"absolute_url,omitempty"`

	CaptureElements []string `json:"capture_elements"`
	Ignore          []string `json:"ignore,omitempty"`

	Before   []ActionStep  `json:"before,omitempty"`
	After    []ActionStep  `json:"after,omitempty"`
	Captures []CapturePlan `json:"captures,omitempty"`

	Skips    []SkipPlan   `json:"skips,omitempty"`
	Browsers *BrowserPlan `json:"browsers,omitempty"`

	Children []SuitePlan `json:"children,omitempty"`
}

// CapturePlan is a named capture and the steps it performs.
type CapturePlan struct {
	Name  string       `json:"name"`
	Steps []ActionStep `json:"steps"`
}

// BrowserPlan is the serializable form of a BrowserMatcher.
type BrowserPlan struct {
	Names    []string `json:"names,omitempty"`
	Patterns []string `json:"patterns,omitempty"`
}

// NewBrowserPlan snapshots m.
func NewBrowserPlan(m BrowserMatcher) BrowserPlan {
	return BrowserPlan{Names: m.Names(), Patterns: m.Patterns()}
}

// SkipPlan is the serializable form of a SkipRule.
type SkipPlan struct {
	Browser BrowserPlan `json:"browser"`
	Reason  string      `json:"reason,omitempty"`
}

// Plan is the result of building a set of suite files.
type Plan struct {
	Workspace string      `json:"workspace,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	Sources   []string    `json:"sources"`
	Suites    []SuitePlan `json:"suites"`
}

// CountSuites returns the number of suites in the tree, children included.
func (p Plan) CountSuites() int {
	n := 0
	var walk func([]SuitePlan)
	walk = func(ss []SuitePlan) {
		for _, s := range ss {
			n++
			walk(s.Children)
		}
	}
	walk(p.Suites)
	return n
}

// LintIssue is a non-fatal finding about a suite file.
type LintIssue struct {
	Path    string `json:"path"`
	Suite   string `json:"suite,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}
