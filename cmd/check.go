package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pycheck/internal/checker"
)

// CheckCommand returns the CLI command for a one-shot type check
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Run a one-shot type check and print the result as JSON",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "severity",
				Aliases: []string{"s"},
				Usage:   "Minimum severity to report (error, warning, information)",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Additional glob patterns to ignore",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number (starts at 1; out-of-range values are clamped)",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Number of diagnostics per page",
				Value: 50,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.Args().Present() {
				cfg.Analysis.TargetPath = c.Args().First()
			}

			svc := checker.New(cfg)
			result, err := svc.Check(c.Context, checker.CheckParams{
				SeverityLevel:  c.String("severity"),
				IgnorePatterns: c.StringSlice("ignore"),
				Page:           c.Int("page"),
				PageSize:       c.Int("page-size"),
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
