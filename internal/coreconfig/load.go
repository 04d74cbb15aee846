package coreconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/openclaude/openclaude/internal/tools"
)

// layer is one YAML settings file's recognized fields, all optional so a
// layer can override only what it sets.
type layer struct {
	Provider      *string  `yaml:"provider"`
	Model         *string  `yaml:"model"`
	APIKey        *string  `yaml:"api_key"`
	BaseURL       *string  `yaml:"base_url"`
	SystemPrompt  *string  `yaml:"system_prompt"`
	MaxTokens     *int     `yaml:"max_tokens"`
	Temperature   *float64 `yaml:"temperature"`
	SessionsDir   *string  `yaml:"sessions_dir"`
	ToolsProfile  *string  `yaml:"tools.profile"`
	ExecSecurity  *string  `yaml:"exec.security"`
	ExecAllowlist []string `yaml:"exec.allowlist"`
}

type layerSource struct {
	name string
	path string
}

// layerPaths resolves the three settings layers in increasing precedence
// order: user, project (nearest ancestor of cwd containing .git), local.
func layerPaths(cwd string) ([]layerSource, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	projectRoot := findProjectRoot(cwd)

	return []layerSource{
		{name: "user", path: filepath.Join(home, ".openclaude", "config.yaml")},
		{name: "project", path: filepath.Join(projectRoot, ".openclaude", "config.yaml")},
		{name: "local", path: filepath.Join(cwd, ".openclaude", "config.local.yaml")},
	}, nil
}

func findProjectRoot(cwd string) string {
	current := filepath.Clean(cwd)
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return cwd
		}
		current = parent
	}
}

// Load resolves Config by starting from Default() and merging the user/
// project/local YAML layers in that order (later layers win field by
// field). Missing layer files are not errors. Load deliberately does not
// call Validate: a caller still needs to apply its own overrides (CLI
// flags, environment) on top of the merged layers before the config is
// complete, and validating here would reject a config that is merely
// incomplete so far rather than actually invalid.
func Load(cwd string) (Config, error) {
	paths, err := layerPaths(cwd)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	for _, src := range paths {
		l, err := loadLayer(src.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s config: %w", src.name, err)
		}
		applyLayer(&cfg, l)
	}

	return cfg, nil
}

func loadLayer(path string) (*layer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var l layer
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &l, nil
}

func applyLayer(cfg *Config, l *layer) {
	if l.Provider != nil {
		cfg.Provider = ResolveProvider(*l.Provider)
	}
	if l.Model != nil {
		cfg.Model = *l.Model
	}
	if l.APIKey != nil {
		cfg.APIKey = *l.APIKey
	}
	if l.BaseURL != nil {
		cfg.BaseURL = *l.BaseURL
	}
	if l.SystemPrompt != nil {
		cfg.SystemPrompt = *l.SystemPrompt
	}
	if l.MaxTokens != nil {
		cfg.MaxTokens = *l.MaxTokens
	}
	if l.Temperature != nil {
		cfg.Temperature = l.Temperature
	}
	if l.SessionsDir != nil {
		cfg.SessionsDir = *l.SessionsDir
	}
	if l.ToolsProfile != nil {
		cfg.ToolsProfile = tools.Profile(*l.ToolsProfile)
	}
	if l.ExecSecurity != nil {
		cfg.ExecSecurity = tools.ExecSecurity(*l.ExecSecurity)
	}
	if l.ExecAllowlist != nil {
		cfg.ExecAllowlist = l.ExecAllowlist
	}
}
