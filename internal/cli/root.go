package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shotsuite/internal/infra/logger"
	"github.com/aalvaropc/shotsuite/internal/infra/workspacefinder"
)

func Execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	_ = logger.Shutdown()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var workspace string

	cmd := &cobra.Command{
		Use:          "shotsuite",
		Short:        "shotsuite: declarative visual regression suites",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			root, ok := logRoot(workspace)
			if !ok {
				return nil
			}
			_, _ = logger.Setup(logger.Config{
				Root:  root,
				Debug: debug,
			})
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .shotsuite/logs/shotsuite.log")
	cmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		initCmd(),
		suitesCmd(&workspace),
		planCmd(&workspace),
		lintCmd(&workspace),
		versionCmd(),
	)
	return cmd
}

// logRoot is the workspace root. Outside a workspace nothing is logged.
func logRoot(workspaceFlag string) (string, bool) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil || !fileExists(filepath.Join(root, workspacefinder.ConfigFile)) {
		return "", false
	}
	return root, true
}
