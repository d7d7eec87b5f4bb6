package cssselector

import (
	"testing"

	"github.com/aalvaropc/shotsuite/internal/domain"
)

func TestCheckSelector(t *testing.T) {
	c := NewChecker()

	valid := []string{
		"*",
		".header",
		"#main > .content",
		"input[name=q]",
		"ul li:nth-child(2n+1)",
		".a, .b",
	}
	for _, sel := range valid {
		if err := c.CheckSelector(sel); err != nil {
			t.Errorf("CheckSelector(%q) unexpected error: %v", sel, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"div[",
		"div >",
		"#",
	}
	for _, sel := range invalid {
		err := c.CheckSelector(sel)
		if err == nil {
			t.Errorf("CheckSelector(%q) expected error", sel)
			continue
		}
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Errorf("CheckSelector(%q) expected invalid config kind, got %v", sel, err)
		}
	}
}
