package specfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/suiterun/suiterun/packages/core/env"
	"github.com/suiterun/suiterun/packages/core/harness"
	"github.com/suiterun/suiterun/packages/core/suite"
)

// TestSpec is one declared test: a named shell command with the same
// optional markers a programmatic registration takes.
type TestSpec struct {
	Name          string `yaml:"name"`
	Run           string `yaml:"run"`
	Ignore        bool   `yaml:"ignore"`
	Only          bool   `yaml:"only"`
	TimeoutMillis int    `yaml:"timeoutMillis"`
}

// Group is a nested scope: hook commands, tests, child groups, and the
// variables visible to their commands. A child group inherits its
// parent's variables and may override them.
type Group struct {
	Name       string            `yaml:"name"`
	EnvFile    string            `yaml:"envFile"`
	Env        map[string]string `yaml:"env"`
	BeforeAll  []string          `yaml:"beforeAll"`
	BeforeEach []string          `yaml:"beforeEach"`
	AfterEach  []string          `yaml:"afterEach"`
	AfterAll   []string          `yaml:"afterAll"`
	Tests      []TestSpec        `yaml:"tests"`
	Groups     []Group           `yaml:"groups"`
}

// File is a parsed suite file. The document itself is the root group.
type File struct {
	Path  string `yaml:"-"`
	Group `yaml:",inline"`
}

// Load reads, schema-checks, and parses one suite file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite file: %w", err)
	}

	if err := ValidateBytes(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.Path = path
	return &f, nil
}

// Build creates a harness named after the file and registers everything
// the file declares. Commands run with the file's directory as their
// working directory.
func Build(f *File, defaults harness.Options) (*harness.Harness, error) {
	h := harness.New(f.Name, defaults)
	baseDir := filepath.Dir(f.Path)
	if err := registerGroup(h, &f.Group, baseDir, nil); err != nil {
		return nil, err
	}
	return h, nil
}

func registerGroup(h *harness.Harness, g *Group, baseDir string, parentVars map[string]string) error {
	vars, err := mergeVars(parentVars, g, baseDir)
	if err != nil {
		return err
	}
	resolver := env.NewResolver()
	resolver.SetVariables(vars)

	for _, cmd := range g.BeforeAll {
		h.BeforeAll(commandHook(cmd, baseDir, resolver))
	}
	for _, cmd := range g.BeforeEach {
		h.BeforeEach(commandHook(cmd, baseDir, resolver))
	}
	for _, cmd := range g.AfterEach {
		h.AfterEach(commandHook(cmd, baseDir, resolver))
	}
	for _, cmd := range g.AfterAll {
		h.AfterAll(commandHook(cmd, baseDir, resolver))
	}

	for _, ts := range g.Tests {
		t := suite.Test{
			Name:    ts.Name,
			Fn:      commandFunc(ts.Run, baseDir, resolver),
			Ignore:  ts.Ignore,
			Only:    ts.Only,
			Timeout: time.Duration(ts.TimeoutMillis) * time.Millisecond,
		}
		if err := h.Add(t); err != nil {
			return err
		}
	}

	for i := range g.Groups {
		child := &g.Groups[i]
		h.Group(child.Name, func() {
			if err == nil {
				err = registerGroup(h, child, baseDir, vars)
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// mergeVars layers a group's variables over its parent's: envFile
// first, then the inline env map.
func mergeVars(parent map[string]string, g *Group, baseDir string) (map[string]string, error) {
	vars := make(map[string]string, len(parent)+len(g.Env))
	for k, v := range parent {
		vars[k] = v
	}
	if g.EnvFile != "" {
		fileVars, err := env.LoadDotEnv(filepath.Join(baseDir, g.EnvFile))
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for k, v := range g.Env {
		vars[k] = v
	}
	return vars, nil
}
