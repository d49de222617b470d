package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pycheck/internal/config"
)

// loadConfig loads the configuration honoring the global --config flag and
// the per-command --path override.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if path := c.String("path"); path != "" {
		cfg.Analysis.TargetPath = path
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
