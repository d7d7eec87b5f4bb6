package domain

// Config represents the shotsuite configuration loaded from shotsuite.yaml.
type Config struct {
	// RootURL is the base relative suite urls resolve against (optional).
	RootURL      string
	SuitePattern string
	Paths        PathsConfig
}

type PathsConfig struct {
	SuitesDir string
	PlansDir  string
}

// DefaultConfig provides sane defaults if shotsuite.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		SuitePattern: "**/*.{yaml,yml}",
		Paths: PathsConfig{
			SuitesDir: "suites",
			PlansDir:  "plans",
		},
	}
}

// WorkspaceSpec describes where a workspace is scaffolded.
type WorkspaceSpec struct {
	Root string
}
