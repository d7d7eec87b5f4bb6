package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shotsuite/internal/cli/render"
	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/infra/planregistry"
	"github.com/aalvaropc/shotsuite/internal/usecase"
)

func planCmd(workspace *string) *cobra.Command {
	var suites []string
	var format string
	var save bool
	var rootURL string

	c := &cobra.Command{
		Use:   "plan [suite...]",
		Short: "Build suite files and print the registered suite tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "pretty" && format != "json" && format != "" {
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}

			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}

			paths, err := resolveSuitePaths(ws, append(suites, args...))
			if err != nil {
				return err
			}

			if rootURL == "" {
				rootURL = ws.cfg.RootURL
			}
			registry := planregistry.New(planregistry.WithRootURL(rootURL))

			opts := []usecase.PlanOption{
				usecase.WithWorkspace(ws.root),
				usecase.WithPlanLogger(ws.log),
			}
			if save {
				opts = append(opts, usecase.WithPlanStore(ws.store))
			}

			ws.log.Info("plan.start", "suites", len(paths), "save", save)
			plan, id, err := usecase.NewPlanSuites(ws.suites, registry, opts...).Execute(cmd.Context(), paths)
			if err != nil {
				ws.log.Error("plan.failed", "error", err)
				return err
			}

			return printPlan(cmd.OutOrStdout(), plan, id, format)
		},
	}

	c.Flags().StringArrayVarP(&suites, "suite", "s", nil, "Suite file name, declared suiteName, glob or path (repeatable; default: all suites)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&save, "save", false, "Save the plan under plans/")
	c.Flags().StringVar(&rootURL, "root-url", "", "Base url for relative suite urls (overrides shotsuite.yaml)")
	return c
}

func printPlan(w io.Writer, plan domain.Plan, planID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"plan_id": planID,
			"plan":    plan,
		}
		return enc.Encode(payload)
	case "pretty", "":
		render.Plan(w, plan, planID, render.ThemeFor(w))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
