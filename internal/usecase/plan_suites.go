package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/ports"
)

// PlanSuites loads suite files, registers them into a plan registry and
// optionally persists the resulting plan.
type PlanSuites struct {
	suites   ports.SuiteLoader
	registry ports.PlanRegistry
	store    ports.PlanStore
	root     string
	log      *slog.Logger
	now      func() time.Time
}

type PlanOption func(*PlanSuites)

// WithPlanStore saves every built plan. A nil store disables saving.
func WithPlanStore(s ports.PlanStore) PlanOption {
	return func(uc *PlanSuites) { uc.store = s }
}

// WithWorkspace records the workspace root in built plans.
func WithWorkspace(root string) PlanOption {
	return func(uc *PlanSuites) { uc.root = root }
}

func WithPlanLogger(l *slog.Logger) PlanOption {
	return func(uc *PlanSuites) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) PlanOption {
	return func(uc *PlanSuites) { uc.now = now }
}

func NewPlanSuites(sl ports.SuiteLoader, reg ports.PlanRegistry, opts ...PlanOption) *PlanSuites {
	uc := &PlanSuites{
		suites:   sl,
		registry: reg,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute builds every suite file in order. The returned id is empty unless a
// store is configured. Registration stops at the first failing file.
func (uc *PlanSuites) Execute(ctx context.Context, paths []string) (domain.Plan, string, error) {
	plan := domain.Plan{
		Workspace: uc.root,
		CreatedAt: uc.now().UTC(),
		Sources:   make([]string, 0, len(paths)),
	}

	uc.registry.Reset()
	builder := NewCreateSuite(uc.registry, WithLogger(uc.log))

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return plan, "", err
		}

		opts, err := uc.suites.LoadSuite(p)
		if err != nil {
			return plan, "", err
		}

		uc.log.Info("plan.suite", "path", p, "suite", opts.SuiteName)

		if err := builder.Execute(opts); err != nil {
			plan.Suites = uc.registry.Plans()
			return plan, "", fmt.Errorf("suite file %s: %w", p, err)
		}
		plan.Sources = append(plan.Sources, p)
	}

	plan.Suites = uc.registry.Plans()

	if uc.store == nil {
		return plan, "", nil
	}

	id, err := uc.store.SavePlan(plan)
	if err != nil {
		return plan, "", err
	}
	uc.log.Info("plan.saved", "id", id, "suites", plan.CountSuites())
	return plan, id, nil
}
