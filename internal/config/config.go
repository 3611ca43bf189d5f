// Package config loads and validates the YAML run configuration: the
// projects to analyze, their member alias mappings, and the folders the
// reports land in.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/FadyCoding/EPEPEP/internal/identity"
)

const defaultCloneWorkers = 4

// Project is one repository to analyze.
type Project struct {
	URL string `yaml:"url"`
	// MembersMapping maps a canonical contributor name to their git
	// author aliases, e.g. "Tom": ["Tom Mansion", "ToMansion"].
	MembersMapping identity.Mapping `yaml:"members_mapping"`

	// RepoDir is the local checkout path, set after cloning.
	RepoDir string `yaml:"-"`
}

// Folders names the output directories of a run.
type Folders struct {
	ClonedProjects    string `yaml:"cloned_projects"`
	CommitReports     string `yaml:"commit_reports"`
	LineOfCodeReports string `yaml:"line_of_code_reports"`
	MarkdownReports   string `yaml:"markdown_reports"`
}

type Config struct {
	Projects     map[string]*Project `yaml:"projects"`
	Folders      Folders             `yaml:"folders"`
	CloneWorkers int                 `yaml:"clone_workers"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.CloneWorkers <= 0 {
		cfg.CloneWorkers = defaultCloneWorkers
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Projects) == 0 {
		return fmt.Errorf("no projects found in the configuration")
	}
	for name, p := range c.Projects {
		if p == nil || p.URL == "" {
			return fmt.Errorf("project %q has no url", name)
		}
	}
	named := map[string]string{
		"cloned_projects":      c.Folders.ClonedProjects,
		"commit_reports":       c.Folders.CommitReports,
		"line_of_code_reports": c.Folders.LineOfCodeReports,
		"markdown_reports":     c.Folders.MarkdownReports,
	}
	keys := make([]string, 0, len(named))
	for k := range named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if named[k] == "" {
			return fmt.Errorf("no %q folder specified in the configuration", k)
		}
	}
	return nil
}

// ProjectNames returns the configured project names, sorted for stable
// iteration order.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
