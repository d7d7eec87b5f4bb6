package ports

import "github.com/aalvaropc/shotsuite/internal/domain"

// SuiteRegistry is the suite-registration entry point of a visual-testing
// framework. Suite registers name and invokes setup with a handle for it;
// suites registered while setup runs become its children.
type SuiteRegistry interface {
	Suite(name string, setup func(s SuiteHandle) error) error
}

// SuiteHandle configures a registered suite.
type SuiteHandle interface {
	SetURL(url string)
	SetCaptureElements(selectors ...string)
	Before(fn domain.ActionFunc)
	After(fn domain.ActionFunc)
	Capture(name string, fn domain.ActionFunc)
	IgnoreElements(selectors ...string)
	Skip(browser domain.BrowserMatcher, reason string)
	Browsers(browsers domain.BrowserMatcher)
}

// PlanRegistry is a SuiteRegistry that can report what was registered.
type PlanRegistry interface {
	SuiteRegistry
	Plans() []domain.SuitePlan
	// Reset forgets every registered suite.
	Reset()
}
