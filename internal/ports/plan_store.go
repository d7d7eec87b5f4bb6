package ports

import "github.com/aalvaropc/shotsuite/internal/domain"

// PlanStore persists built plans for later comparison.
type PlanStore interface {
	SavePlan(plan domain.Plan) (id string, err error)
}
