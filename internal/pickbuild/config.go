package pickbuild

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable holding an optional YAML overlay.
const ConfigEnv = "PICKBUILD_CONFIG"

// DefaultBuildTarget is used by targets that do not name their own.
const DefaultBuildTarget = "{branch}-z-{package}-esr-115-stack-gate"

// Target is one release branch in the propagation sequence.
type Target struct {
	Release      string `yaml:"release"`
	Branch       string `yaml:"branch"`
	RecordOrigin bool   `yaml:"record_origin"`
	BuildTarget  string `yaml:"build_target,omitempty"`
}

// BuildTargetFor expands the build target template for pkg.
func (t Target) BuildTargetFor(pkg string) string {
	tmpl := t.BuildTarget
	if tmpl == "" {
		tmpl = DefaultBuildTarget
	}
	return strings.NewReplacer("{branch}", t.Branch, "{package}", pkg).Replace(tmpl)
}

type Config struct {
	WorkBranch       string   `yaml:"work_branch"`
	Remote           string   `yaml:"remote"`
	Packages         []string `yaml:"packages"`
	PkgTool          string   `yaml:"pkg_tool"`
	Git              string   `yaml:"git"`
	AllowNonTerminal bool     `yaml:"allow_non_terminal"`
	LogLevel         string   `yaml:"log_level"`
	Targets          []Target `yaml:"targets"`
}

// LoadDefaults fills c with the current branch table, newest release first.
func (c *Config) LoadDefaults() {
	c.WorkBranch = "rhel-9.2.0"
	c.Remote = "origin"
	c.Packages = []string{"firefox", "thunderbird"}
	c.PkgTool = "rhpkg"
	c.Git = "git"
	c.AllowNonTerminal = false
	c.LogLevel = "info"
	c.Targets = []Target{
		{Release: "9.3", Branch: "rhel-9.3.0", RecordOrigin: true},
		// no -x so the result can be picked to c9s without an unknown sha1
		{Release: "9.2", Branch: "rhel-9.2.0"},
		{Release: "9.0", Branch: "rhel-9.0.0", RecordOrigin: true},
		// same for c8s
		{Release: "8.9", Branch: "rhel-8.9.0"},
		{Release: "8.8", Branch: "rhel-8.8.0", RecordOrigin: true},
		{Release: "8.6", Branch: "rhel-8.6.0", RecordOrigin: true},
		{Release: "8.4", Branch: "rhel-8.4.0", RecordOrigin: true},
		{Release: "8.2", Branch: "rhel-8.2.0", RecordOrigin: true},
		{Release: "7.9", Branch: "rhel-7.9", RecordOrigin: true, BuildTarget: "rhel-7.9-z-{package}-esr-115-stack-candidate"},
	}
}

// LoadConfig returns the defaults overlaid with the YAML file named by
// PICKBUILD_CONFIG, if set. Keys absent from the file keep their defaults;
// a targets list in the file replaces the whole table.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path := os.Getenv(ConfigEnv)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the invariants Run relies on.
func (c *Config) Validate() error {
	if c.WorkBranch == "" || c.Remote == "" || c.PkgTool == "" || c.Git == "" {
		return errors.New("work_branch, remote, pkg_tool and git must be set")
	}
	if len(c.Packages) == 0 {
		return errors.New("at least one package is required")
	}
	if len(c.Targets) == 0 {
		return errors.New("at least one target is required")
	}

	seen := make(map[string]struct{}, len(c.Targets))
	for _, t := range c.Targets {
		if t.Release == "" || t.Branch == "" {
			return fmt.Errorf("target %+v needs release and branch", t)
		}
		if t.Release == SwitchBackRelease {
			return fmt.Errorf("release %q is reserved", SwitchBackRelease)
		}
		if _, dup := seen[t.Release]; dup {
			return fmt.Errorf("duplicate release %q", t.Release)
		}
		seen[t.Release] = struct{}{}
	}
	return nil
}
