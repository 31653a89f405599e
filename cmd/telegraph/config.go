package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/flemzord/telegraph"
	"gopkg.in/yaml.v3"
)

// envPattern matches ${VAR} and ${VAR:-default} expressions.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^}\\]|\\.)*))?\}`)

// loadConfig reads a YAML configuration file, expands environment
// variables, and parses it into a telegraph.Config. A missing file at
// the default path is not an error: the zero config talks to the
// public service anonymously.
func loadConfig(path string, required bool) (telegraph.Config, error) {
	var cfg telegraph.Config

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	expanded, err := expandEnv(raw)
	if err != nil {
		return cfg, fmt.Errorf("config: expanding variables in %s: %w", path, err)
	}

	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// expandEnv replaces ${VAR} and ${VAR:-default} patterns in raw YAML
// bytes. Returns an error listing all unresolved variables.
func expandEnv(raw []byte) ([]byte, error) {
	var unresolved []string

	result := envPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		subs := envPattern.FindSubmatch(match)
		name := string(subs[1])
		hasDefault := len(subs) > 2 && subs[2] != nil

		if value, ok := os.LookupEnv(name); ok {
			return []byte(value)
		}
		if hasDefault {
			return subs[2]
		}
		unresolved = append(unresolved, name)
		return match
	})

	if len(unresolved) > 0 {
		return nil, fmt.Errorf("unresolved variables: %v", unresolved)
	}
	return result, nil
}

// defaultConfigPath is ~/.config/telegraph/config.yaml, falling back to
// the working directory when the home directory is unknown.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "telegraph.yaml"
	}
	return filepath.Join(home, ".config", "telegraph", "config.yaml")
}
