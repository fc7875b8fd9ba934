package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"jobhunt-scraper/internal/scrape/types"
)

type SourcesFile struct {
	Sources []types.Source `yaml:"sources"`
}

// OverlaySources replaces cfg.Sources with the list in path when it has one.
func OverlaySources(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var sf SourcesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}
	if len(sf.Sources) > 0 {
		cfg.Sources = sf.Sources
	}
	return nil
}
