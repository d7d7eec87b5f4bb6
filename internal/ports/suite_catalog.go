package ports

import "github.com/aalvaropc/shotsuite/internal/domain"

type SuiteCatalog interface {
	ListSuites(root string) ([]domain.SuiteRef, error)
}
