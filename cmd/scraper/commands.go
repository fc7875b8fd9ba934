package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"jobhunt-scraper/internal/config"
	"jobhunt-scraper/internal/fetch"
	"jobhunt-scraper/internal/output"
	"jobhunt-scraper/internal/report"
	"jobhunt-scraper/internal/scrape"
	"jobhunt-scraper/internal/scrape/doc"
	"jobhunt-scraper/internal/scrape/types"
)

// exitNoRecords distinguishes "ran fine, found nothing" from other failures.
const exitNoRecords = 2

var defaultConfigPath = filepath.Join("config", "config.yml")

// commonFlags returns fresh flag values for each command.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "env",
			Usage: "environment file path",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "config file (default: <data dir>/config.yml, created on first run)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "debug logging",
		},
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "scraper",
		Usage: "extract job postings from arbitrary listing pages",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "scrape the configured sources and write the records",
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:  "url",
						Usage: "listing page to scrape instead of the configured sources (repeatable)",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "output file, or - for stdout",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "json or csv (default: from --out extension, then config)",
					},
					&cli.BoolFlag{
						Name:  "detail",
						Usage: "fetch each posting's own page for its description",
					},
					&cli.BoolFlag{
						Name:  "summary",
						Usage: "print a summary table after writing",
					},
				}, commonFlags()...),
				Action: runAction,
			},
			{
				Name:  "probe",
				Usage: "show how a page responds to candidate selectors",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Usage:    "page to probe",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "save",
						Usage: "also save the raw HTML to this file",
					},
					&cli.StringSliceFlag{
						Name:  "selector",
						Usage: "selector to try (repeatable; default: built-in list)",
					},
				}, commonFlags()...),
				Action: probeAction,
			},
			{
				Name:   "init",
				Usage:  "create the user config in the data dir",
				Flags:  commonFlags(),
				Action: initAction,
			},
		},
	}
}

func setupLogging(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func dataDir() string {
	if d := os.Getenv("JOBSCRAPE_DATA_DIR"); d != "" {
		return d
	}
	return "."
}

// loadConfig resolves config in order: file, sources overlay, environment,
// then command flags.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	if err := config.LoadEnvFile(cmd.String("env")); err != nil {
		return config.Config{}, err
	}

	path := cmd.String("config")
	if path == "" {
		p, err := config.EnsureUserConfig(dataDir(), defaultConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("config bootstrap failed: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := config.OverlaySources(&cfg, filepath.Join(filepath.Dir(path), "sources.yml")); err != nil {
		return cfg, fmt.Errorf("sources overlay: %w", err)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if urls := cmd.StringSlice("url"); len(urls) > 0 {
		cfg.Sources = nil
		for _, u := range urls {
			cfg.Sources = append(cfg.Sources, types.Source{URL: u})
		}
	}
	if cmd.IsSet("out") {
		cfg.App.Output = cmd.String("out")
	}
	if cmd.IsSet("format") {
		cfg.App.Format = cmd.String("format")
	} else if cmd.IsSet("out") {
		cfg.App.Format = string(output.FormatFor(cfg.App.Output, output.Format(cfg.App.Format)))
	}
	if cmd.Bool("detail") {
		cfg.Detail.Enabled = true
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}
	if !res.OK() {
		return cfg, res
	}
	return cfg, nil
}

func newClient(cfg config.Config) *fetch.Client {
	return fetch.New(cfg.App.UserAgent, cfg.App.Timeout, cfg.App.MaxAttempts)
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("verbose"))
	l := log.With().Str("run_id", uuid.NewString()).Logger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		return errors.New("nothing to scrape: no sources configured and no --url given")
	}
	format, err := output.ParseFormat(cfg.App.Format)
	if err != nil {
		return err
	}

	p := scrape.New(newClient(cfg), scrape.Options{
		Vocab:        cfg.Vocabulary,
		ListingDelay: cfg.Polite.ListingDelay,
		DetailDelay:  cfg.Polite.DetailDelay,
		Detail:       cfg.Detail.Enabled,
		Concurrency:  cfg.App.Concurrency,
	})
	p.Log = l

	l.Info().Int("sources", len(cfg.Sources)).Bool("detail", cfg.Detail.Enabled).Msg("run started")
	recs, err := p.Run(ctx, cfg.Sources)
	if errors.Is(err, scrape.ErrNoRecords) {
		return cli.Exit("no job records found; the pages may be rendered client-side or need new selectors (try `scraper probe`)", exitNoRecords)
	}
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if cfg.App.Output == "-" {
		if err := output.Encode(w, format, recs); err != nil {
			return err
		}
	} else {
		if err := output.Write(cfg.App.Output, format, recs); err != nil {
			return fmt.Errorf("write %s: %w", cfg.App.Output, err)
		}
		l.Info().Str("path", cfg.App.Output).Int("count", len(recs)).Msg("records written")
	}

	if cmd.Bool("summary") {
		return report.Render(w, report.Summarize(recs))
	}
	return nil
}

func probeAction(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("verbose"))

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	target := cmd.String("url")
	body, err := newClient(cfg).Fetch(ctx, target)
	if err != nil {
		return err
	}
	if save := cmd.String("save"); save != "" {
		if err := os.WriteFile(save, body, 0o644); err != nil {
			return err
		}
		log.Info().Str("path", save).Msg("raw HTML saved")
	}

	d, err := doc.Parse(bytes.NewReader(body))
	if err != nil {
		return err
	}
	return report.RenderProbe(cmd.Root().Writer, scrape.Probe(d, cmd.StringSlice("selector")))
}

func initAction(ctx context.Context, cmd *cli.Command) error {
	path, err := config.EnsureUserConfig(dataDir(), defaultConfigPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, path)
	return nil
}
