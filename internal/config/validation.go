package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

var (
	knownManagers = map[string]bool{"npm": true, "pnpm": true, "yarn": true, "bun": true}
	knownTypes    = map[string]bool{"jsx": true, "tsx": true, "js": true, "ts": true}
)

// Validate checks the configuration for values the add pipeline cannot use.
func (c Config) Validate(projectRoot string) []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validatePackageManager()...)
	results = append(results, c.validateType()...)
	results = append(results, c.validateResources(projectRoot)...)
	return results
}

func (c Config) validatePackageManager() []ValidationResult {
	if c.Packages.Manager == "" || knownManagers[c.Packages.Manager] {
		return nil
	}
	return []ValidationResult{{
		Level:   "error",
		Message: fmt.Sprintf("packages.manager %q is not one of npm, pnpm, yarn, bun", c.Packages.Manager),
	}}
}

func (c Config) validateType() []ValidationResult {
	if c.Add.Type == "" || knownTypes[c.Add.Type] {
		return nil
	}
	return []ValidationResult{{
		Level:   "warning",
		Message: fmt.Sprintf("add.type %q has no bundled templates", c.Add.Type),
	}}
}

func (c Config) validateResources(projectRoot string) []ValidationResult {
	if c.Resources == "" {
		return nil
	}
	resolved := c.Resources
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(projectRoot, resolved)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("resources directory %q not found", c.Resources),
		}}
	}
	if !info.IsDir() {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("resources path %q is not a directory", c.Resources),
		}}
	}
	return nil
}
