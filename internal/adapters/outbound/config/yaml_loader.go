// Package config loads YAML check-definition files, so recurring checks can
// be versioned alongside the monitoring configuration instead of being
// spelled out in flags.
package config

import (
	"fmt"
	"os"

	"github.com/yifangd/check-json/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLLoader implements domain.CheckLoader by reading a YAML file.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads a check definition. Unlike implicit dotfiles, the check file
// is always named explicitly, so a missing file is an error here.
func (l *YAMLLoader) Load(path string) (domain.CheckDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CheckDefinition{}, fmt.Errorf("reading check file: %w", err)
	}

	var def domain.CheckDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return domain.CheckDefinition{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return def, nil
}
