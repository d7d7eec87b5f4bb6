package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func suitesCmd(workspace *string) *cobra.Command {
	c := &cobra.Command{
		Use:   "suites",
		Short: "Manage suite files in a workspace",
	}

	c.AddCommand(suitesListCmd(workspace))
	return c
}

func suitesListCmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List suite files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}

			refs, err := ws.catalog.ListSuites(ws.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no suites found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Fprintf(out, "- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}
}
