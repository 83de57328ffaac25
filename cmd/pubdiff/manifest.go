package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Diff diffConfig `toml:"diff"`
}

type diffConfig struct {
	Format string   `toml:"format"`
	Deny   []string `toml:"deny"`
}

// findPubdiffToml walks up from startDir looking for a pubdiff.toml.
func findPubdiffToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "pubdiff.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest returns the manifest closest to startDir, if any.
// The manifest is optional: absence is not an error.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findPubdiffToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Diff.Format != "" {
		if err := validateFormat(cfg.Diff.Format); err != nil {
			return projectConfig{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	for _, category := range cfg.Diff.Deny {
		if err := validateDenyCategory(category); err != nil {
			return projectConfig{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return cfg, nil
}

func validateFormat(format string) error {
	switch format {
	case "pretty", "json", "markdown":
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func validateDenyCategory(category string) error {
	switch category {
	case "removed", "changed", "added", "all":
		return nil
	default:
		return fmt.Errorf("unknown deny category: %s", category)
	}
}
