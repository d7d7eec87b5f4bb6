package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/aalvaropc/shotsuite/internal/domain"
)

// Issues prints lint findings with paths relative to root.
func Issues(w io.Writer, root string, issues []domain.LintIssue, th Theme) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "OK")
		return
	}

	for _, is := range issues {
		path := is.Path
		if rel, err := filepath.Rel(root, path); err == nil && root != "" {
			path = rel
		}

		loc := path
		if is.Suite != "" {
			loc += " [" + is.Suite + "]"
		}
		fmt.Fprintf(w, "%s %s %s: %s\n", th.Warn.Render("warning"), loc, th.Label.Render(is.Field), is.Message)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, th.Muted.Render(fmt.Sprintf("%d warning(s)", len(issues))))
}
