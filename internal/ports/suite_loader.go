package ports

import "github.com/aalvaropc/shotsuite/internal/domain"

// SuiteLoader loads suite definitions from a source (e.g., filesystem).
type SuiteLoader interface {
	LoadSuite(path string) (domain.SuiteOptions, error)
}

// SuiteInspector loads a suite definition and reports the parts of it that
// were dropped as uninterpretable.
type SuiteInspector interface {
	InspectSuite(path string) (domain.SuiteOptions, []domain.LintIssue, error)
}
