package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/aalvaropc/shotsuite/internal/domain"
)

// Plan prints the suite tree of plan, one block per suite, children indented.
func Plan(w io.Writer, plan domain.Plan, id string, th Theme) {
	fmt.Fprintln(w, th.Title.Render(fmt.Sprintf("Plan: %d suite(s) from %d file(s)", plan.CountSuites(), len(plan.Sources))))
	if plan.Workspace != "" {
		fmt.Fprintln(w, th.Subtitle.Render("Workspace: "+plan.Workspace))
	}
	if id != "" {
		fmt.Fprintln(w, th.Subtitle.Render("Plan ID:   "+id))
	}
	fmt.Fprintln(w)

	for _, s := range plan.Suites {
		suite(w, s, 0, th)
		fmt.Fprintln(w)
	}
}

func suite(w io.Writer, s domain.SuitePlan, depth int, th Theme) {
	indent := strings.Repeat("  ", depth)
	field := func(label, value string) {
		fmt.Fprintf(w, "%s  %s %s\n", indent, th.Label.Render(label+":"), value)
	}

	fmt.Fprintf(w, "%s%s\n", indent, th.Suite.Render("▸ "+s.Name))

	url := s.URL
	if s.AbsoluteURL != "" && s.AbsoluteURL != s.URL {
		url += " " + th.Muted.Render("("+s.AbsoluteURL+")")
	}
	field("url", url)
	field("capture elements", strings.Join(s.CaptureElements, ", "))
	if len(s.Ignore) > 0 {
		field("ignore", strings.Join(s.Ignore, ", "))
	}
	if len(s.Before) > 0 {
		field("before", Steps(s.Before))
	}
	if len(s.After) > 0 {
		field("after", Steps(s.After))
	}
	for _, c := range s.Captures {
		steps := Steps(c.Steps)
		if steps == "" {
			steps = th.Muted.Render("(no actions)")
		}
		field("capture "+c.Name, steps)
	}
	for _, sk := range s.Skips {
		v := browsers(sk.Browser)
		if sk.Reason != "" {
			v += " " + th.Muted.Render("("+sk.Reason+")")
		}
		field("skip", th.Warn.Render(v))
	}
	if s.Browsers != nil {
		field("browsers", browsers(*s.Browsers))
	}

	for _, c := range s.Children {
		suite(w, c, depth+1, th)
	}
}

func browsers(b domain.BrowserPlan) string {
	parts := make([]string, 0, len(b.Names)+len(b.Patterns))
	parts = append(parts, b.Names...)
	for _, p := range b.Patterns {
		parts = append(parts, "/"+p+"/")
	}
	return strings.Join(parts, ", ")
}

// Steps renders an action list on one line.
func Steps(steps []domain.ActionStep) string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, Step(s))
	}
	return strings.Join(out, "; ")
}

func Step(s domain.ActionStep) string {
	parts := []string{string(s.Kind)}
	switch s.Kind {
	case domain.ActionWait:
		parts = append(parts, s.Duration.String())
	case domain.ActionWaitForElementToShow, domain.ActionWaitForElementToHide:
		parts = append(parts, s.Selector)
		if s.Duration > 0 {
			parts = append(parts, s.Duration.String())
		}
	case domain.ActionWaitForJSCondition:
		parts = append(parts, fmt.Sprintf("%q", s.Text))
		if s.Duration > 0 {
			parts = append(parts, s.Duration.String())
		}
	case domain.ActionDragAndDrop:
		parts = append(parts, s.Selector, "->", s.Target)
	case domain.ActionSendKeys:
		if s.Selector != "" {
			parts = append(parts, s.Selector)
		}
		parts = append(parts, fmt.Sprintf("%q", s.Text))
	case domain.ActionSendFile:
		parts = append(parts, s.Selector, s.Text)
	case domain.ActionSetWindowSize:
		parts = append(parts, fmt.Sprintf("%dx%d", s.Width, s.Height))
	case domain.ActionExecuteJS:
		parts = append(parts, fmt.Sprintf("%q", s.Text))
	case domain.ActionChangeOrientation:
	default:
		if s.Selector != "" {
			parts = append(parts, s.Selector)
		}
	}
	return strings.Join(parts, " ")
}
