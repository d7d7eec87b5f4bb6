package workspacefinder

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/shotsuite/internal/domain"
)

// ConfigFile is the workspace marker and configuration file.
const ConfigFile = "shotsuite.yaml"

// LoadConfig loads shotsuite.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if y.Shotsuite.RootURL != "" {
		u, err := url.Parse(y.Shotsuite.RootURL)
		if err != nil || !u.IsAbs() {
			return cfg, invalid(path, fmt.Sprintf("root_url %q must be an absolute url", y.Shotsuite.RootURL))
		}
		cfg.RootURL = y.Shotsuite.RootURL
	}
	if y.Shotsuite.SuitePattern != "" {
		if !doublestar.ValidatePattern(y.Shotsuite.SuitePattern) {
			return cfg, invalid(path, fmt.Sprintf("suite_pattern %q is not a valid glob", y.Shotsuite.SuitePattern))
		}
		cfg.SuitePattern = y.Shotsuite.SuitePattern
	}
	if y.Shotsuite.Paths.SuitesDir != "" {
		cfg.Paths.SuitesDir = y.Shotsuite.Paths.SuitesDir
	}
	if y.Shotsuite.Paths.PlansDir != "" {
		cfg.Paths.PlansDir = y.Shotsuite.Paths.PlansDir
	}

	return cfg, nil
}

func invalid(path, msg string) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrInvalidConfig),
	}
}

type yamlConfig struct {
	Shotsuite struct {
		RootURL      string `yaml:"root_url"`
		SuitePattern string `yaml:"suite_pattern"`

		Paths struct {
			SuitesDir string `yaml:"suites_dir"`
			PlansDir  string `yaml:"plans_dir"`
		} `yaml:"paths"`
	} `yaml:"shotsuite"`
}
