package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/shotsuite/internal/domain"
)

func TestStep(t *testing.T) {
	cases := []struct {
		step domain.ActionStep
		want string
	}{
		{domain.ActionStep{Kind: domain.ActionWait, Duration: 200 * time.Millisecond}, "wait 200ms"},
		{domain.ActionStep{Kind: domain.ActionClick, Selector: ".btn"}, "click .btn"},
		{domain.ActionStep{Kind: domain.ActionWaitForElementToShow, Selector: ".page", Duration: 5 * time.Second}, "waitForElementToShow .page 5s"},
		{domain.ActionStep{Kind: domain.ActionWaitForElementToHide, Selector: ".spinner"}, "waitForElementToHide .spinner"},
		{domain.ActionStep{Kind: domain.ActionDragAndDrop, Selector: ".a", Target: ".b"}, "dragAndDrop .a -> .b"},
		{domain.ActionStep{Kind: domain.ActionSendKeys, Selector: "input", Text: "abc"}, `sendKeys input "abc"`},
		{domain.ActionStep{Kind: domain.ActionSendKeys, Text: "abc"}, `sendKeys "abc"`},
		{domain.ActionStep{Kind: domain.ActionSetWindowSize, Width: 1024, Height: 768}, "setWindowSize 1024x768"},
		{domain.ActionStep{Kind: domain.ActionExecuteJS, Text: "x()"}, `executeJS "x()"`},
		{domain.ActionStep{Kind: domain.ActionChangeOrientation}, "changeOrientation"},
	}
	for _, c := range cases {
		if got := Step(c.step); got != c.want {
			t.Errorf("Step(%+v)=%q want %q", c.step, got, c.want)
		}
	}
}

func TestPlan_PrintsTree(t *testing.T) {
	plan := domain.Plan{
		Sources: []string{"suites/home.yaml"},
		Suites: []domain.SuitePlan{
			{
				Name:            "home",
				URL:             "/",
				AbsoluteURL:     "http://localhost:8080/",
				CaptureElements: []string{"body"},
				Ignore:          []string{".ad"},
				Before:          []domain.ActionStep{{Kind: domain.ActionClick, Selector: ".menu"}},
				Captures: []domain.CapturePlan{
					{Name: "plain", Steps: []domain.ActionStep{}},
				},
				Skips: []domain.SkipPlan{
					{Browser: domain.BrowserPlan{Patterns: []string{"ie.*"}}, Reason: "layout"},
				},
				Browsers: &domain.BrowserPlan{Names: []string{"chrome"}},
				Children: []domain.SuitePlan{
					{Name: "header", URL: "/", CaptureElements: []string{".header"}},
				},
			},
		},
	}

	var buf bytes.Buffer
	Plan(&buf, plan, "20260203T101112Z_home", PlainTheme())
	out := buf.String()

	wants := []string{
		"Plan: 2 suite(s) from 1 file(s)",
		"Plan ID:   20260203T101112Z_home",
		"▸ home\n",
		"  url: / (http://localhost:8080/)\n",
		"  capture elements: body\n",
		"  ignore: .ad\n",
		"  before: click .menu\n",
		"  capture plain: (no actions)\n",
		"  skip: /ie.*/ (layout)\n",
		"  browsers: chrome\n",
		"  ▸ header\n",
		"    capture elements: .header\n",
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestIssues(t *testing.T) {
	var buf bytes.Buffer
	Issues(&buf, "/ws", nil, PlainTheme())
	if buf.String() != "OK\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	Issues(&buf, "/ws", []domain.LintIssue{
		{Path: "/ws/suites/home.yaml", Suite: "home / header", Field: "selector", Message: "bad"},
	}, PlainTheme())
	out := buf.String()
	if !strings.Contains(out, "warning suites/home.yaml [home / header] selector: bad\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "1 warning(s)") {
		t.Fatalf("expected summary, got:\n%s", out)
	}
}

func TestThemeFor_NonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	th := ThemeFor(&buf)
	if got := th.Suite.Render("x"); got != "x" {
		t.Fatalf("expected plain rendering, got %q", got)
	}
}
