package yamlsuite

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/shotsuite/internal/domain"
)

func writeSuite(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, "suites", rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadSuite_Valid(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, "header.yaml", `
suiteName: header
url: /index.html
selector: [.header, .nav]
ignore: .ad
before:
  - click: .menu
  - wait: 200ms
after:
  - executeJS: "window.scrollTo(0, 0)"
capture:
  - mouseMove: .logo
browsers: [chrome, "/firefox.*/i"]
skip:
  browser: ie8
  reason: no flexbox
childSuites:
  - suiteName: logo
    selector: .logo
`)

	opts, err := NewLoader(tmp).LoadSuite(p)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}

	if opts.SuiteName != "header" {
		t.Fatalf("expected name=header, got=%s", opts.SuiteName)
	}
	if opts.URL.String() != "/index.html" {
		t.Fatalf("expected url=/index.html, got=%s", opts.URL.String())
	}
	if !reflect.DeepEqual(opts.Selector, domain.Selectors{".header", ".nav"}) {
		t.Fatalf("unexpected selector: %v", opts.Selector)
	}
	if !reflect.DeepEqual(opts.Ignore, domain.Selectors{".ad"}) {
		t.Fatalf("unexpected ignore: %v", opts.Ignore)
	}

	before := domain.RecordActions(opts.Before)
	wantBefore := []domain.ActionStep{
		{Kind: domain.ActionClick, Selector: ".menu"},
		{Kind: domain.ActionWait, Duration: 200 * time.Millisecond},
	}
	if !reflect.DeepEqual(before, wantBefore) {
		t.Fatalf("unexpected before steps: %+v", before)
	}
	after := domain.RecordActions(opts.After)
	if len(after) != 1 || after[0].Text != "window.scrollTo(0, 0)" {
		t.Fatalf("unexpected after steps: %+v", after)
	}

	if opts.Capture.Kind() != domain.CaptureSingle {
		t.Fatalf("expected single capture, got %s", opts.Capture.Kind())
	}

	if !opts.Browsers.Matches("chrome") || !opts.Browsers.Matches("Firefox-ESR") || opts.Browsers.Matches("safari") {
		t.Fatalf("unexpected browser matcher: %s", opts.Browsers)
	}

	rules := opts.Skip.Rules()
	if len(rules) != 1 || rules[0].Reason != "no flexbox" || !rules[0].Browser.Matches("ie8") {
		t.Fatalf("unexpected skip rules: %+v", rules)
	}

	if len(opts.ChildSuites) != 1 || opts.ChildSuites[0].SuiteName != "logo" {
		t.Fatalf("unexpected children: %+v", opts.ChildSuites)
	}
	if opts.ChildSuites[0].URL.IsSet() {
		t.Fatalf("child url must stay unset so it can be inherited")
	}
}

func TestLoadSuite_NamedCapturesKeepDocumentOrder(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, "menu.yaml", `
suiteName: menu
capture:
  zeta:
    - click: .z
  alpha: ~
  middle:
    - focus: "#m"
`)

	opts, err := NewLoader(tmp).LoadSuite(p)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}

	entries := opts.Capture.Entries()
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"zeta", "alpha", "middle"}) {
		t.Fatalf("unexpected capture order: %v", names)
	}
	if steps := domain.RecordActions(entries[1].Fn); len(steps) != 0 {
		t.Fatalf("expected empty capture for null entry, got %+v", steps)
	}
}

func TestLoadSuite_StructuredURL(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, "search.yaml", `
suiteName: search
url:
  protocol: "https:"
  hostname: shop.example.com
  port: 8443
  pathname: /search
  query:
    q: red shoes
    page: 2
  hash: "#results"
`)

	opts, err := NewLoader(tmp).LoadSuite(p)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}
	if !opts.URL.IsStructured() {
		t.Fatalf("expected structured url")
	}

	want := "https://shop.example.com:8443/search?q=red+shoes&page=2#results"
	if got := opts.URL.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLoadSuite_DefaultNameFromPath(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, filepath.Join("pages", "home.yml"), `
url: /
`)

	opts, err := NewLoader(tmp).LoadSuite(p)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}
	if opts.SuiteName != "pages/home" {
		t.Fatalf("expected default name pages/home, got %q", opts.SuiteName)
	}
}

func TestLoadSuite_ChildWithoutNameStaysUnnamed(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, "x.yaml", `
suiteName: parent
childSuites:
  - selector: .a
`)

	opts, err := NewLoader(tmp).LoadSuite(p)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}
	if opts.ChildSuites[0].SuiteName != "" {
		t.Fatalf("expected unnamed child, got %q", opts.ChildSuites[0].SuiteName)
	}
}

func TestInspectSuite_MergeKeysFillUndeclaredFields(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, "merge.yaml", `
suiteName: parent
childSuites:
  - &base {suiteName: a, url: /a, selector: .x}
  - <<: *base
    suiteName: b
  - <<: [{url: /first}, {url: /second, ignore: .ad}]
    suiteName: c
`)

	opts, notes, err := NewLoader(tmp).InspectSuite(p)
	if err != nil {
		t.Fatalf("InspectSuite error: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes, got %+v", notes)
	}
	if len(opts.ChildSuites) != 3 {
		t.Fatalf("expected 3 children, got %d", len(opts.ChildSuites))
	}

	b := opts.ChildSuites[1]
	if b.SuiteName != "b" {
		t.Fatalf("expected explicit suiteName to win, got %q", b.SuiteName)
	}
	if b.URL.String() != "/a" {
		t.Fatalf("expected merged url /a, got %q", b.URL.String())
	}
	if !reflect.DeepEqual(b.Selector, domain.Selectors{".x"}) {
		t.Fatalf("expected merged selector, got %v", b.Selector)
	}

	c := opts.ChildSuites[2]
	if c.URL.String() != "/first" {
		t.Fatalf("expected first merged mapping to win, got %q", c.URL.String())
	}
	if !reflect.DeepEqual(c.Ignore, domain.Selectors{".ad"}) {
		t.Fatalf("expected ignore from second merged mapping, got %v", c.Ignore)
	}
}

func TestLoadSuite_SkipForms(t *testing.T) {
	cases := []struct {
		name  string
		skip  string
		rules int
	}{
		{"true", "skip: true", 1},
		{"false", "skip: false", 0},
		{"single", "skip: {reason: flaky}", 1},
		{"list", "skip:\n  - browser: /ie.*/\n  - browser: [safari, opera]\n    reason: rendering", 2},
		{"string is dropped", "skip: sometimes", 0},
		{"number is dropped", "skip: 3", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tmp := t.TempDir()
			p := writeSuite(t, tmp, "s.yaml", "suiteName: s\n"+c.skip+"\n")

			opts, err := NewLoader(tmp).LoadSuite(p)
			if err != nil {
				t.Fatalf("LoadSuite error: %v", err)
			}
			if got := len(opts.Skip.Rules()); got != c.rules {
				t.Fatalf("expected %d rules, got %d", c.rules, got)
			}
		})
	}
}

func TestInspectSuite_LenientDrops(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, "odd.yaml", `
suiteName: odd
capture: just-a-string
browsers: {chrome: true}
before: click
selector: [.ok, {nested: true}]
colour: blue
childSuites:
  - plain-string
  - suiteName: kid
    after:
      - teleport: .x
      - click: .y
      - wait: soon
`)

	opts, notes, err := NewLoader(tmp).InspectSuite(p)
	if err != nil {
		t.Fatalf("InspectSuite error: %v", err)
	}

	if opts.Capture.Kind() != domain.CaptureNone {
		t.Fatalf("expected malformed capture to be dropped")
	}
	if opts.Browsers.IsSet() {
		t.Fatalf("expected malformed browsers to be dropped")
	}
	if opts.Before != nil {
		t.Fatalf("expected malformed before hook to be dropped")
	}
	if !reflect.DeepEqual(opts.Selector, domain.Selectors{".ok"}) {
		t.Fatalf("unexpected selector: %v", opts.Selector)
	}
	if len(opts.ChildSuites) != 1 || opts.ChildSuites[0].SuiteName != "kid" {
		t.Fatalf("unexpected children: %+v", opts.ChildSuites)
	}
	steps := domain.RecordActions(opts.ChildSuites[0].After)
	if len(steps) != 1 || steps[0].Selector != ".y" {
		t.Fatalf("expected only the valid step to survive, got %+v", steps)
	}

	fields := map[string]bool{}
	for _, n := range notes {
		fields[n.Field] = true
		if n.Path != p {
			t.Fatalf("expected note path %s, got %s", p, n.Path)
		}
		if !strings.Contains(n.Message, "ignored") {
			t.Fatalf("unexpected note message %q", n.Message)
		}
	}
	for _, want := range []string{
		"capture", "browsers", "before", "selector[1]", "colour",
		"childSuites[0]", "childSuites[1].after[0]", "childSuites[1].after[2]",
	} {
		if !fields[want] {
			t.Errorf("expected a note for %s, got %v", want, fields)
		}
	}
}

func TestInspectSuite_InvalidPatternDropped(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, "re.yaml", "suiteName: re\nbrowsers: [\"/chrome(/\", firefox]\n")

	opts, notes, err := NewLoader(tmp).InspectSuite(p)
	if err != nil {
		t.Fatalf("InspectSuite error: %v", err)
	}
	if !reflect.DeepEqual(opts.Browsers.Names(), []string{"firefox"}) || opts.Browsers.Patterns() != nil {
		t.Fatalf("unexpected browsers: %s", opts.Browsers)
	}
	if len(notes) != 1 || notes[0].Field != "browsers[0]" {
		t.Fatalf("expected one note for browsers[0], got %+v", notes)
	}
}

func TestLoadSuite_Errors(t *testing.T) {
	tmp := t.TempDir()

	_, err := NewLoader(tmp).LoadSuite(filepath.Join(tmp, "missing.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}

	bad := writeSuite(t, tmp, "bad.yaml", "suiteName: [unclosed\n")
	_, err = NewLoader(tmp).LoadSuite(bad)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig for syntax error, got %v", err)
	}

	list := writeSuite(t, tmp, "list.yaml", "- a\n- b\n")
	_, err = NewLoader(tmp).LoadSuite(list)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for non-mapping file, got %v", err)
	}

	empty := writeSuite(t, tmp, "empty.yaml", "")
	_, err = NewLoader(tmp).LoadSuite(empty)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig for empty file, got %v", err)
	}
}

func TestDecodeStep_Forms(t *testing.T) {
	tmp := t.TempDir()
	p := writeSuite(t, tmp, "steps.yaml", `
suiteName: steps
before:
  - waitForElementToShow: {selector: .modal, timeout: 1500}
  - waitForJSCondition: "window.ready === true"
  - dragAndDrop: {from: .card, to: .lane}
  - sendKeys: {selector: "input[name=q]", keys: shoes}
  - sendFile: {selector: "input[type=file]", path: fixtures/a.png}
  - setWindowSize: 1280x800
  - setWindowSize: {width: 320, height: 640}
  - changeOrientation
`)

	opts, err := NewLoader(tmp).LoadSuite(p)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}

	got := domain.RecordActions(opts.Before)
	want := []domain.ActionStep{
		{Kind: domain.ActionWaitForElementToShow, Selector: ".modal", Duration: 1500 * time.Millisecond},
		{Kind: domain.ActionWaitForJSCondition, Text: "window.ready === true"},
		{Kind: domain.ActionDragAndDrop, Selector: ".card", Target: ".lane"},
		{Kind: domain.ActionSendKeys, Selector: "input[name=q]", Text: "shoes"},
		{Kind: domain.ActionSendFile, Selector: "input[type=file]", Text: "fixtures/a.png"},
		{Kind: domain.ActionSetWindowSize, Width: 1280, Height: 800},
		{Kind: domain.ActionSetWindowSize, Width: 320, Height: 640},
		{Kind: domain.ActionChangeOrientation},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected steps:\n got=%+v\nwant=%+v", got, want)
	}
}

func TestParsePattern(t *testing.T) {
	cases := []struct {
		in        string
		isPattern bool
		match     string
	}{
		{"chrome", false, ""},
		{"/", false, ""},
		{"/chrome/", true, "chrome-beta"},
		{"/CHROME/i", true, "chrome"},
		{"/a/x", false, ""},
		{"/a/g", true, "a"},
	}
	for _, c := range cases {
		re, isPattern, err := parsePattern(c.in)
		if err != nil {
			t.Fatalf("parsePattern(%q) error: %v", c.in, err)
		}
		if isPattern != c.isPattern {
			t.Fatalf("parsePattern(%q) isPattern=%v, want %v", c.in, isPattern, c.isPattern)
		}
		if c.isPattern && !re.MatchString(c.match) {
			t.Fatalf("parsePattern(%q) should match %q", c.in, c.match)
		}
	}
}
