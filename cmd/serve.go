package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pycheck/internal/checker"
	"github.com/pycheck/internal/mcpserver"
)

// ServeCommand returns the CLI command for starting the MCP server over stdio
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the MCP server with stdio transport",
		Flags: []cli.Flag{
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

			svc := checker.New(cfg)
			server := mcpserver.New(svc, c.App.Version)
			return server.ServeStdio()
		},
	}
}
