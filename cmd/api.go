package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pycheck/internal/api"
	"github.com/pycheck/internal/checker"
)

// APICommand returns the CLI command for starting the HTTP API server
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Start the pycheck HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port for the API server (overrides config)",
			},
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Project directory to analyze (overrides config)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			port := cfg.Server.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			fmt.Printf("Starting pycheck API server on port %d...\n", port)

			server := api.NewServer(checker.New(cfg), port, cfg.Server.RatePerSecond, c.App.Version)
			return server.Start()
		},
	}
}
