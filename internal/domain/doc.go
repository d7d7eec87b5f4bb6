// Package domain contains the core model for shotsuite.
//
// A suite is described by SuiteOptions: the page to open, the elements to
// capture, optional hooks, captures, skip rules, a browser restriction and
// nested child suites. The domain is transport- and persistence-agnostic: it
// does not depend on YAML parsing, the filesystem or any particular
// visual-testing framework. Infra/adapters map into/from these types.
package domain
