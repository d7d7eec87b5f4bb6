package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shotsuite/internal/cli/render"
	"github.com/aalvaropc/shotsuite/internal/usecase"
)

func lintCmd(workspace *string) *cobra.Command {
	var suites []string
	var strict bool

	c := &cobra.Command{
		Use:   "lint [suite...]",
		Short: "Check suite files for invalid selectors and ignored fields (no registration)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}

			paths, err := resolveSuitePaths(ws, append(suites, args...))
			if err != nil {
				return err
			}

			issues, err := usecase.NewLintSuites(ws.suites, ws.checker).Execute(cmd.Context(), paths)
			if err != nil {
				return err
			}

			ws.log.Info("lint.done", "files", len(paths), "issues", len(issues))
			out := cmd.OutOrStdout()
			render.Issues(out, ws.root, issues, render.ThemeFor(out))

			if strict && len(issues) > 0 {
				return fmt.Errorf("lint failed (%d warning(s))", len(issues))
			}
			return nil
		},
	}

	c.Flags().StringArrayVarP(&suites, "suite", "s", nil, "Suite file name, declared suiteName, glob or path (repeatable; default: all suites)")
	c.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any warning is reported")
	return c
}
