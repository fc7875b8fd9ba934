package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"jobhunt-scraper/internal/scrape/types"
	"jobhunt-scraper/internal/scrape/validate"
)

type Config struct {
	App struct {
		UserAgent   string        `yaml:"user_agent"`
		Timeout     time.Duration `yaml:"timeout"`
		MaxAttempts int           `yaml:"max_attempts"`
		Concurrency int           `yaml:"concurrency"`
		Output      string        `yaml:"output"`
		Format      string        `yaml:"format"`
	} `yaml:"app"`

	Polite struct {
		ListingDelay time.Duration `yaml:"listing_delay"`
		DetailDelay  time.Duration `yaml:"detail_delay"`
	} `yaml:"polite"`

	Detail struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"detail"`

	Sources    []types.Source      `yaml:"sources"`
	Vocabulary validate.Vocabulary `yaml:"vocabulary"`
}

// Default is the configuration used for anything a file leaves out.
func Default() Config {
	var cfg Config
	cfg.App.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	cfg.App.Timeout = 30 * time.Second
	cfg.App.MaxAttempts = 3
	cfg.App.Concurrency = 4
	cfg.App.Output = "jobs.json"
	cfg.App.Format = "json"
	cfg.Polite.ListingDelay = time.Second
	cfg.Polite.DetailDelay = 500 * time.Millisecond
	cfg.Vocabulary = validate.DefaultVocabulary()
	return cfg
}

// Load reads path over Default. Vocabulary lists present in the file replace
// the built-in ones wholesale.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	cfg.Vocabulary = cfg.Vocabulary.WithDefaults()
	return cfg, err
}
