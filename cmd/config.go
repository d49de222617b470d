package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pycheck/internal/config"
)

// ConfigCommand returns the CLI command for managing configuration
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage pycheck configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create a sample configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "Where to write the configuration file",
						Value: "pycheck.toml",
					},
				},
				Action: func(c *cli.Context) error {
					path := c.String("output")
					if err := config.InitConfig(path); err != nil {
						return err
					}
					fmt.Printf("Created configuration file at %s\n", path)
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Validate the configuration",
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadConfig(c.String("config"))
					if err != nil {
						return err
					}
					if err := config.Validate(cfg); err != nil {
						return fmt.Errorf("configuration invalid: %w", err)
					}
					fmt.Println("Configuration is valid")
					return nil
				},
			},
		},
	}
}
