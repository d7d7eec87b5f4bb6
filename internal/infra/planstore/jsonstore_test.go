package planstore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/shotsuite/internal/domain"
)

func samplePlan(created time.Time) domain.Plan {
	return domain.Plan{
		Workspace: "/tmp/my shop",
		CreatedAt: created,
		Sources:   []string{"suites/header.yaml"},
		Suites: []domain.SuitePlan{
			{
				Name:            "Header Bar",
				Path:            []string{"Header Bar"},
				URL:             "/",
				CaptureElements: []string{".header"},
				Captures:        []domain.CapturePlan{{Name: "plain", Steps: []domain.ActionStep{}}},
				Children: []domain.SuitePlan{
					{Name: "logo", Path: []string{"Header Bar", "logo"}, URL: "/", CaptureElements: []string{".logo"}},
				},
			},
		},
	}
}

func TestSavePlan_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()

	store := NewJSONStore(tmp, domain.DefaultConfig())

	created := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SavePlan(samplePlan(created))
	if err != nil {
		t.Fatalf("SavePlan error: %v", err)
	}
	if id != "20260203T101112Z_header-bar" {
		t.Fatalf("unexpected id: %q", id)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "plans", id+".json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.Plan
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.CountSuites() != 2 {
		t.Fatalf("expected 2 suites, got=%d", decoded.CountSuites())
	}
	if decoded.Suites[0].Children[0].CaptureElements[0] != ".logo" {
		t.Fatalf("unexpected child: %+v", decoded.Suites[0].Children[0])
	}

	if _, err := os.Stat(filepath.Join(tmp, "plans", id+".json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected tmp file to be gone, err=%v", err)
	}
}

func TestSavePlan_UsesConfiguredDirAndClock(t *testing.T) {
	tmp := t.TempDir()

	cfg := domain.DefaultConfig()
	cfg.Paths.PlansDir = "out/plans"
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	store := NewJSONStore(tmp, cfg, WithNow(func() time.Time { return now }))

	plan := samplePlan(time.Time{})
	plan.Suites = append(plan.Suites, domain.SuitePlan{Name: "footer"})

	id, err := store.SavePlan(plan)
	if err != nil {
		t.Fatalf("SavePlan error: %v", err)
	}
	if id != "20260506T070809Z_my-shop" {
		t.Fatalf("unexpected id: %q", id)
	}
	if _, err := os.Stat(filepath.Join(tmp, "out", "plans", id+".json")); err != nil {
		t.Fatalf("expected plan file, err=%v", err)
	}
}

func TestSavePlan_UsesUniqueFilenameOnCollision(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	created := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id1, err := store.SavePlan(samplePlan(created))
	if err != nil {
		t.Fatalf("SavePlan #1 error: %v", err)
	}
	id2, err := store.SavePlan(samplePlan(created))
	if err != nil {
		t.Fatalf("SavePlan #2 error: %v", err)
	}
	if id2 != id1+"_2" {
		t.Fatalf("expected second id %q, got %q", id1+"_2", id2)
	}
}

func TestSavePlan_AppendsIndex(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	created := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if _, err := store.SavePlan(samplePlan(created)); err != nil {
			t.Fatalf("SavePlan error: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(tmp, "plans", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("bad index line %q: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 index lines, got=%d", len(lines))
	}
	if lines[1]["suites"].(float64) != 2 {
		t.Fatalf("expected suites=2, got=%v", lines[1]["suites"])
	}
	if !strings.HasSuffix(lines[1]["file"].(string), "_2.json") {
		t.Fatalf("unexpected file: %v", lines[1]["file"])
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Demo API":        "demo-api",
		"  pages/home  ":  "pages-home",
		"a__b..c":         "a-b-c",
		"---":             "",
		"Ünïcode Header!": "n-code-header",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q)=%q want %q", in, got, want)
		}
	}
}
