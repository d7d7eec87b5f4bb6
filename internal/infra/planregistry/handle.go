package planregistry

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/shotsuite/internal/domain"
)

// handle configures one recorded suite. Hooks and captures are run once
// against a recorder so the plan holds their steps.
type handle struct {
	r *Registry
	n *node
}

func (h *handle) SetURL(u string) {
	h.n.plan.URL = u
	h.n.plan.AbsoluteURL = h.r.absolute(u)
}

func (h *handle) SetCaptureElements(selectors ...string) {
	h.n.plan.CaptureElements = cloneStrings(selectors)
}

func (h *handle) Before(fn domain.ActionFunc) {
	h.n.plan.Before = domain.RecordActions(fn)
}

func (h *handle) After(fn domain.ActionFunc) {
	h.n.plan.After = domain.RecordActions(fn)
}

func (h *handle) Capture(name string, fn domain.ActionFunc) {
	if h.n.captureNames[name] {
		h.fail(fmt.Errorf("%w: %q in %q", domain.ErrDuplicateCapture, name, strings.Join(h.n.plan.Path, " / ")))
		return
	}
	h.n.captureNames[name] = true

	steps := domain.RecordActions(fn)
	if steps == nil {
		steps = []domain.ActionStep{}
	}
	h.n.plan.Captures = append(h.n.plan.Captures, domain.CapturePlan{Name: name, Steps: steps})
}

func (h *handle) IgnoreElements(selectors ...string) {
	h.n.plan.Ignore = append(h.n.plan.Ignore, selectors...)
}

func (h *handle) Skip(browser domain.BrowserMatcher, reason string) {
	if !browser.IsSet() {
		browser = domain.MatchAllBrowsers()
	}
	h.n.plan.Skips = append(h.n.plan.Skips, domain.SkipPlan{
		Browser: domain.NewBrowserPlan(browser),
		Reason:  reason,
	})
}

func (h *handle) Browsers(browsers domain.BrowserMatcher) {
	bp := domain.NewBrowserPlan(browsers)
	h.n.plan.Browsers = &bp
}

func (h *handle) fail(err error) {
	if h.n.err != nil {
		return
	}
	h.n.err = &domain.OpError{
		Op:   "planregistry.capture",
		Kind: domain.KindInvalidConfig,
		Err:  err,
	}
}
